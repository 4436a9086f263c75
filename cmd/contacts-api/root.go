package main

import (
	"fmt"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the contacts-api command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts-api",
		Short: "Contacts API server",
		Long: `contacts-api serves a token-authenticated REST API for managing
contacts and their addresses. Configuration is read from CONTACTS_* environment
variables and an optional .env file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewEmailCmd())

	return cmd
}

// loadRuntime loads the configuration and builds the root logger.
func loadRuntime() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
