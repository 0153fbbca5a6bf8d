package main

import (
	"dealflow_backend/database"
	"dealflow_backend/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger.InitWithLevel(cfg.Server.Env, cfg.Server.LogLevel)

		db, err := database.Open(database.Options{
			Driver: cfg.Database.Driver,
			DSN:    cfg.Database.DSN,
			Env:    cfg.Server.Env,
		})
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		return database.AutoMigrate(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
