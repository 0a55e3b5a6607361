package cmd

import (
	"github.com/jsphweid/diatonicpad/config"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "diatonicpad",
	Short: "Diatonic chord pad",
	Long: `Diatonic chord pad: pick a key and mode, then play the seven chords
of the scale from pre-rendered samples.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/diatonicpad/config.json)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
