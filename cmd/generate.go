package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jsphweid/diatonicpad/batch"
	"github.com/jsphweid/diatonicpad/config"
	"github.com/jsphweid/diatonicpad/library"
	"github.com/spf13/cobra"
)

var (
	generateAll       bool
	generateWorkers   int
	generateOverwrite bool
	generateDuration  float64
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&generateAll, "all", false, "render the full sweep from the config instead of the starter set")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "parallel renders (default: number of CPUs)")
	generateCmd.Flags().BoolVar(&generateOverwrite, "overwrite", false, "re-render samples that already exist")
	generateCmd.Flags().Float64Var(&generateDuration, "duration", 0, "sample length in seconds")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Renders chord samples",
	Long: `Renders chord samples into the assets directory. Without --all only
I, V, vi and IV of C Ionian are rendered, which is enough to play.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if generateWorkers > 0 {
			cfg.Generate.Workers = generateWorkers
		}
		if generateDuration > 0 {
			cfg.Generate.Duration = generateDuration
		}
		cfg.Generate.Overwrite = cfg.Generate.Overwrite || generateOverwrite

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		report, err := Generate(ctx, cfg, generateAll)
		fmt.Printf("Wrote %v samples, skipped %v of %v\n", report.Written, report.Skipped, report.Total)
		return err
	},
}

// Generate renders the starter set, or the configured sweep when all is set,
// into cfg.AssetsDir.
func Generate(ctx context.Context, cfg *config.Config, all bool) (batch.Report, error) {
	opts := batch.FromConfig(cfg.Generate)
	opts.Progress = batch.PrintProgress

	jobs := batch.StarterJobs()
	if all {
		jobs = batch.Jobs(opts)
	}
	return batch.Run(ctx, library.New(cfg.AssetsDir), jobs, opts)
}
