package main

import (
	"dealflow_backend/internal/app"

	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket server",
	RunE:  runServe,
}

func init() {
	for _, cmd := range []*cobra.Command{serveCmd, rootCmd} {
		cmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "run schema migrations before serving")
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return app.Run(cfg, migrateOnStart)
}
