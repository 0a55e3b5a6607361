package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/diatonicpad/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(padCmd)
}

var padCmd = &cobra.Command{
	Use:   "pad",
	Short: "Plays the pad from the terminal",
	Long:  `Plays the pad from the terminal. Keys 1-7 trigger the scale degrees.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		app, err := NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		_, err = tea.NewProgram(tui.NewModel(app.Session), tea.WithAltScreen()).Run()
		return err
	},
}
