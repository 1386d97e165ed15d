package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/linguapix/reviewd/internal/review"
	"github.com/linguapix/reviewd/internal/statistics"
)

// RunReport displays the learner's per-level record distribution. It
// reads the database directly rather than the API, so it works against a
// replica without a running server.
func RunReport(ctx context.Context, repository review.ReviewRepository, out io.Writer, learnerID int64, levels int) error {
	records, err := repository.FindAllByLearner(ctx, learnerID)
	if err != nil {
		return fmt.Errorf("failed to load review records: %w", err)
	}

	result := statistics.Calculate(records, levels, time.Now())

	fmt.Fprintf(out, "Review Level Report (learner %d)\n", learnerID)
	fmt.Fprintln(out, "================================")
	fmt.Fprintln(out)

	if result.TotalRecords == 0 {
		fmt.Fprintln(out, "No review records found for this learner.")
		return nil
	}

	fmt.Fprintf(out, "%-6s  %-8s  %-6s  %-8s  %-6s\n", "Level", "Records", "Due", "Correct", "Wrong")
	fmt.Fprintf(out, "%-6s  %-8s  %-6s  %-8s  %-6s\n", "-----", "-------", "---", "-------", "-----")
	for _, level := range result.Levels {
		fmt.Fprintf(out, "%-6d  %-8d  %-6d  %-8d  %-6d\n",
			level.Level, level.RecordCount, level.DueCount, level.CorrectCount, level.WrongCount)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Totals:  %d record(s), %d due, accuracy %.1f%%\n",
		result.TotalRecords, result.TotalDue, result.Accuracy*100)
	return nil
}
