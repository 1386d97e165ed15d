// Package statistics computes reporting breakdowns over review records.
package statistics

import (
	"time"

	"github.com/linguapix/reviewd/internal/review"
)

// LevelStatistics summarizes the records sitting at one mastery level.
type LevelStatistics struct {
	Level        int
	RecordCount  int
	DueCount     int
	CorrectCount int
	WrongCount   int
}

// LearnerStatistics is the per-level breakdown of a learner's records.
type LearnerStatistics struct {
	Levels       []LevelStatistics
	TotalRecords int
	TotalDue     int
	Accuracy     float64
}

// Calculate buckets records by mastery level. The result always covers
// every level of a levels-sized interval table, including empty ones, so
// a rendered table has a stable shape. Records above the table (possible
// after a table is shortened between deployments) are clamped into the
// top bucket.
func Calculate(records []review.ReviewRecord, levels int, asOf time.Time) LearnerStatistics {
	if levels < 1 {
		levels = 1
	}

	result := LearnerStatistics{
		Levels: make([]LevelStatistics, levels),
	}
	for i := range result.Levels {
		result.Levels[i].Level = i
	}

	var totalCorrect, totalWrong int
	for _, record := range records {
		level := record.Level
		if level < 0 {
			level = 0
		}
		if level >= levels {
			level = levels - 1
		}

		bucket := &result.Levels[level]
		bucket.RecordCount++
		bucket.CorrectCount += record.CorrectCount
		bucket.WrongCount += record.WrongCount
		if record.DueAsOf(asOf) {
			bucket.DueCount++
			result.TotalDue++
		}

		result.TotalRecords++
		totalCorrect += record.CorrectCount
		totalWrong += record.WrongCount
	}

	if totalCorrect+totalWrong > 0 {
		result.Accuracy = float64(totalCorrect) / float64(totalCorrect+totalWrong)
	}
	return result
}
