// Package cli implements the reviewctl commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/linguapix/reviewd/internal/review"
)

// APIClient is the reviewd API surface the commands talk to.
type APIClient interface {
	Enroll(ctx context.Context, learnerID, itemID int64, level int) (review.ReviewRecord, error)
	GetDue(ctx context.Context, learnerID int64, limit int) ([]review.ReviewRecord, error)
	SubmitOutcome(ctx context.Context, learnerID, itemID int64, isCorrect bool) (review.ReviewRecord, error)
	GetProgress(ctx context.Context, learnerID int64) (review.Progress, error)
}

// RunEnroll enrolls an item for a learner and prints the resulting record.
func RunEnroll(ctx context.Context, client APIClient, out io.Writer, learnerID, itemID int64, level int) error {
	record, err := client.Enroll(ctx, learnerID, itemID, level)
	if err != nil {
		return fmt.Errorf("enroll item %d for learner %d: %w", itemID, learnerID, err)
	}

	fmt.Fprintf(out, "Enrolled item %d for learner %d\n", record.ItemID, record.LearnerID)
	printRecord(out, record, time.Now())
	return nil
}

// RunDue prints the learner's due review queue, most overdue first.
func RunDue(ctx context.Context, client APIClient, out io.Writer, learnerID int64, limit int) error {
	records, err := client.GetDue(ctx, learnerID, limit)
	if err != nil {
		return fmt.Errorf("fetch due reviews for learner %d: %w", learnerID, err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No items due for review.")
		return nil
	}

	fmt.Fprintf(out, "%d item(s) due for review\n\n", len(records))
	fmt.Fprintf(out, "%-12s  %-6s  %-20s  %-8s  %-6s\n", "Item", "Level", "Due At", "Correct", "Wrong")
	fmt.Fprintf(out, "%-12s  %-6s  %-20s  %-8s  %-6s\n", "----", "-----", "------", "-------", "-----")

	now := time.Now()
	overdue := color.New(color.FgRed)
	for _, record := range records {
		dueAt := record.NextDueAt.Local().Format("2006-01-02 15:04:05")
		if now.Sub(record.NextDueAt) > 24*time.Hour {
			dueAt = overdue.Sprint(dueAt)
		}
		fmt.Fprintf(out, "%-12d  %-6d  %-20s  %-8d  %-6d\n",
			record.ItemID, record.Level, dueAt, record.CorrectCount, record.WrongCount)
	}
	return nil
}

// RunSubmit reports a review outcome and prints the updated schedule.
func RunSubmit(ctx context.Context, client APIClient, out io.Writer, learnerID, itemID int64, isCorrect bool) error {
	record, err := client.SubmitOutcome(ctx, learnerID, itemID, isCorrect)
	if err != nil {
		return fmt.Errorf("submit outcome for item %d: %w", itemID, err)
	}

	if isCorrect {
		color.New(color.FgGreen).Fprintln(out, "Correct!")
	} else {
		color.New(color.FgRed).Fprintln(out, "Wrong.")
	}
	printRecord(out, record, time.Now())
	return nil
}

// RunProgress prints the learner's aggregate progress counters.
func RunProgress(ctx context.Context, client APIClient, out io.Writer, learnerID int64) error {
	progress, err := client.GetProgress(ctx, learnerID)
	if err != nil {
		return fmt.Errorf("fetch progress for learner %d: %w", learnerID, err)
	}

	fmt.Fprintf(out, "Progress for learner %d\n", learnerID)
	fmt.Fprintf(out, "  Pending reviews: %d\n", progress.PendingCount)
	fmt.Fprintf(out, "  Tracked items:   %d\n", progress.TotalCount)
	fmt.Fprintf(out, "  Total correct:   %d\n", progress.TotalCorrect)
	fmt.Fprintf(out, "  Total wrong:     %d\n", progress.TotalWrong)
	return nil
}

func printRecord(out io.Writer, record review.ReviewRecord, now time.Time) {
	fmt.Fprintf(out, "  Level:    %d\n", record.Level)
	if record.DueAsOf(now) {
		fmt.Fprintf(out, "  Next due: now\n")
	} else {
		fmt.Fprintf(out, "  Next due: %s (in %s)\n",
			record.NextDueAt.Local().Format("2006-01-02 15:04:05"),
			record.NextDueAt.Sub(now).Round(time.Minute))
	}
	fmt.Fprintf(out, "  Correct:  %d, Wrong: %d\n", record.CorrectCount, record.WrongCount)
}
