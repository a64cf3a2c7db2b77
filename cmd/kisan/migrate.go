package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kisan/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the document store tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if _, err := database.OpenMigrated(cfg.DBPath); err != nil {
				return err
			}
			log.Info("migrated", zap.String("db", cfg.DBPath))
			return nil
		},
	}
}
