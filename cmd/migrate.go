package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tusshar172004/Code-Pod/internal/config"
	"github.com/Tusshar172004/Code-Pod/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending SQL migrations",
	RunE:  runMigrateUp,
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.MigrateUp(cfg.DatabaseURL())
}
