package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hotel-users-api/internal"
	"hotel-users-api/internal/infrastructure/db/postgres"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the event workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logger, err := internal.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if serveMigrate {
			if err = runMigrations(logger, cfg, postgres.Up); err != nil {
				logger.Error("migrations failed", zap.Error(err))
				return err
			}
		}

		app, err := internal.NewApp(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Error("init app failed", zap.Error(err))
			return err
		}
		defer app.Close()

		app.InitControllers()

		return app.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}
