package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linguapix/reviewd/internal/cli"
	"github.com/linguapix/reviewd/internal/database"
	"github.com/linguapix/reviewd/internal/datasync"
	"github.com/linguapix/reviewd/internal/review"
)

func newReportCommand() *cobra.Command {
	var learnerID int64

	command := &cobra.Command{
		Use:   "report",
		Short: "Show a learner's per-level record distribution",
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

			repository := review.NewDBReviewRepository(db)
			return cli.RunReport(cmd.Context(), repository, os.Stdout, learnerID, len(cfg.Review.Intervals))
		},
	}
	command.Flags().Int64Var(&learnerID, "learner", 0, "learner ID")
	_ = command.MarkFlagRequired("learner")
	return command
}

func newExportCommand() *cobra.Command {
	var learnerID int64
	var output string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export a learner's review records to a YAML file",
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

			exporter := datasync.NewExporter(review.NewDBReviewRepository(db))
			count, err := exporter.Export(cmd.Context(), learnerID, output)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d record(s) to %s\n", count, output)
			return nil
		},
	}
	command.Flags().Int64Var(&learnerID, "learner", 0, "learner ID")
	command.Flags().StringVar(&output, "output", "review_records.yml", "output file path")
	_ = command.MarkFlagRequired("learner")
	return command
}
