package main

import (
	"github.com/spf13/cobra"

	"blood-donor-service/internal/app"
	"blood-donor-service/internal/core/config"
	"blood-donor-service/internal/core/database"
	"blood-donor-service/internal/core/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadE(configPath)
		if err != nil {
			return err
		}
		log, cleanup := logger.New(cfg.Log)
		defer cleanup()

		db, err := app.OpenDB(cfg, log, true)
		if err != nil {
			return err
		}
		return database.Close(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
