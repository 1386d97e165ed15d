package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linguapix/reviewd/internal/cli"
)

func newEnrollCommand() *cobra.Command {
	var learnerID, itemID int64
	var level int

	command := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll an item into a learner's review schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}
			defer func() { _ = apiClient.Close() }()

			return cli.RunEnroll(cmd.Context(), apiClient, os.Stdout, learnerID, itemID, level)
		},
	}
	command.Flags().Int64Var(&learnerID, "learner", 0, "learner ID")
	command.Flags().Int64Var(&itemID, "item", 0, "item ID")
	command.Flags().IntVar(&level, "level", 0, "initial mastery level")
	_ = command.MarkFlagRequired("learner")
	_ = command.MarkFlagRequired("item")
	return command
}

func newDueCommand() *cobra.Command {
	var learnerID int64
	var limit int

	command := &cobra.Command{
		Use:   "due",
		Short: "List a learner's due review items",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}
			defer func() { _ = apiClient.Close() }()

			return cli.RunDue(cmd.Context(), apiClient, os.Stdout, learnerID, limit)
		},
	}
	command.Flags().Int64Var(&learnerID, "learner", 0, "learner ID")
	command.Flags().IntVar(&limit, "limit", 20, "maximum number of items")
	_ = command.MarkFlagRequired("learner")
	return command
}

func newSubmitCommand() *cobra.Command {
	var learnerID, itemID int64
	var correct, wrong bool

	command := &cobra.Command{
		Use:   "submit",
		Short: "Submit a review outcome for an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if correct == wrong {
				return fmt.Errorf("exactly one of --correct or --wrong is required")
			}

			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}
			defer func() { _ = apiClient.Close() }()

			return cli.RunSubmit(cmd.Context(), apiClient, os.Stdout, learnerID, itemID, correct)
		},
	}
	command.Flags().Int64Var(&learnerID, "learner", 0, "learner ID")
	command.Flags().Int64Var(&itemID, "item", 0, "item ID")
	command.Flags().BoolVar(&correct, "correct", false, "the answer was correct")
	command.Flags().BoolVar(&wrong, "wrong", false, "the answer was wrong")
	_ = command.MarkFlagRequired("learner")
	_ = command.MarkFlagRequired("item")
	return command
}

func newProgressCommand() *cobra.Command {
	var learnerID int64

	command := &cobra.Command{
		Use:   "progress",
		Short: "Show a learner's aggregate review progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}
			defer func() { _ = apiClient.Close() }()

			return cli.RunProgress(cmd.Context(), apiClient, os.Stdout, learnerID)
		},
	}
	command.Flags().Int64Var(&learnerID, "learner", 0, "learner ID")
	_ = command.MarkFlagRequired("learner")
	return command
}
