package review

import (
	"errors"
	"time"
)

// ErrInvalidArgument marks inputs rejected before any store access, so
// callers can tell validation failures apart from persistence failures.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrRecordNotFound is returned when no review record exists for a
// (learner, item) pair.
var ErrRecordNotFound = errors.New("review record not found")

// ErrDuplicateRecord is returned by Create when the pair's uniqueness
// constraint rejects the insert.
var ErrDuplicateRecord = errors.New("review record already exists")

// ReviewRecord tracks one (learner, item) pair's position on the
// forgetting curve. Counters are cumulative and never reset.
type ReviewRecord struct {
	RecordID     int64     `db:"record_id" json:"record_id"`
	LearnerID    int64     `db:"learner_id" json:"learner_id"`
	ItemID       int64     `db:"item_id" json:"item_id"`
	Level        int       `db:"level" json:"level"`
	NextDueAt    time.Time `db:"next_due_at" json:"next_due_at"`
	CorrectCount int       `db:"correct_count" json:"correct_count"`
	WrongCount   int       `db:"wrong_count" json:"wrong_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DueAsOf reports whether the record is due at the given time.
func (r ReviewRecord) DueAsOf(now time.Time) bool {
	return !r.NextDueAt.After(now)
}

// Progress summarizes a learner's records at a point in time.
type Progress struct {
	PendingCount int `db:"pending_count" json:"pending_count"`
	TotalCount   int `db:"total_count" json:"total_count"`
	TotalCorrect int `db:"total_correct" json:"total_correct"`
	TotalWrong   int `db:"total_wrong" json:"total_wrong"`
}
