package main

import (
	"github.com/deppfellow/contacts-api/internal/database"
	"github.com/spf13/cobra"
)

func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  `Apply every pending migration embedded in the binary to the configured PostgreSQL database.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, loggerService, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return err
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
