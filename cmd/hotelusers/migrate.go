package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hotel-users-api/config"
	"hotel-users-api/internal"
	"hotel-users-api/internal/infrastructure/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

func migrateRun(dir postgres.Direction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logger, err := internal.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		return runMigrations(logger, cfg, dir)
	}
}

func runMigrations(logger *zap.Logger, cfg config.Config, dir postgres.Direction) error {
	dsn, err := cfg.DBDSN()
	if err != nil {
		return err
	}

	return postgres.Migrate(logger, dsn, dir)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all up migrations",
			RunE:  migrateRun(postgres.Up),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			RunE:  migrateRun(postgres.Down),
		},
	)
}
