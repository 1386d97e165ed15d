package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linguapix/reviewd/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.MigrateUp(db); err != nil {
				return err
			}

			fmt.Println("Migrations applied.")
			return nil
		},
	}
}
