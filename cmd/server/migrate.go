package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"terminal-terrace/blog/config"
	"terminal-terrace/blog/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitDatabase(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		defer database.Close()

		slog.Info("schema migrated", "driver", config.Conf.Database.Driver)
		return nil
	},
}
