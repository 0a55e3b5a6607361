package cmd

import (
	"context"
	"log"
	"net/http"

	"github.com/jsphweid/diatonicpad/server"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the pad over HTTP",
	Long:  `Serves the pad over HTTP so other clients can trigger chords and manage progressions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		app, err := NewApp(context.Background(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		log.Printf("Listening on %v", cfg.Addr)
		log.Fatal(http.ListenAndServe(cfg.Addr, server.New(app.Session, app.Library).Handler()))
		return nil
	},
}
