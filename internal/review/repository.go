package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/linguapix/reviewd/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/review/repository.go -package=mock_review

// ReviewRepository defines persistence operations for review records.
type ReviewRepository interface {
	// Find returns the record for the pair, or ErrRecordNotFound.
	Find(ctx context.Context, learnerID, itemID int64) (*ReviewRecord, error)
	// Create inserts a new record and fills in its RecordID. It returns
	// ErrDuplicateRecord when the pair's uniqueness constraint rejects
	// the insert.
	Create(ctx context.Context, record *ReviewRecord) error
	// UpdateAtomically applies mutate to the pair's record under a row
	// lock and persists the result. Concurrent updates for the same pair
	// serialize; updates for different pairs do not block each other.
	// Returns ErrRecordNotFound when the pair has no record.
	UpdateAtomically(ctx context.Context, learnerID, itemID int64, mutate func(*ReviewRecord)) (*ReviewRecord, error)
	// ListDue returns records for the learner due as of asOf, most
	// overdue first, truncated to limit.
	ListDue(ctx context.Context, learnerID int64, asOf time.Time, limit int) ([]ReviewRecord, error)
	// FindAllByLearner returns every record for the learner.
	FindAllByLearner(ctx context.Context, learnerID int64) ([]ReviewRecord, error)
	// Progress aggregates the learner's records in a single statement.
	Progress(ctx context.Context, learnerID int64, asOf time.Time) (Progress, error)
}

// DBReviewRepository implements ReviewRepository using MySQL.
type DBReviewRepository struct {
	db *sqlx.DB
}

// NewDBReviewRepository creates a new DBReviewRepository.
func NewDBReviewRepository(db *sqlx.DB) *DBReviewRepository {
	return &DBReviewRepository{db: db}
}

// Find returns the record for the (learner, item) pair.
func (r *DBReviewRepository) Find(ctx context.Context, learnerID, itemID int64) (*ReviewRecord, error) {
	var record ReviewRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM review_records WHERE learner_id = ? AND item_id = ?",
		learnerID, itemID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find review record (learner %d, item %d): %w", learnerID, itemID, ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find review record (learner %d, item %d): %w", learnerID, itemID, err)
	}
	return &record, nil
}

// Create inserts a new review record.
func (r *DBReviewRepository) Create(ctx context.Context, record *ReviewRecord) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO review_records
			(learner_id, item_id, level, next_due_at, correct_count, wrong_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.LearnerID, record.ItemID, record.Level, record.NextDueAt,
		record.CorrectCount, record.WrongCount, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if database.IsDuplicateEntry(err) {
			return fmt.Errorf("insert review record (learner %d, item %d): %w", record.LearnerID, record.ItemID, ErrDuplicateRecord)
		}
		return fmt.Errorf("insert review record (learner %d, item %d): %w", record.LearnerID, record.ItemID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read inserted record id: %w", err)
	}
	record.RecordID = id
	return nil
}

// UpdateAtomically runs a row-locked read-modify-write for the pair.
func (r *DBReviewRepository) UpdateAtomically(
	ctx context.Context,
	learnerID, itemID int64,
	mutate func(*ReviewRecord),
) (*ReviewRecord, error) {
	var record ReviewRecord

	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &record,
			"SELECT * FROM review_records WHERE learner_id = ? AND item_id = ? FOR UPDATE",
			learnerID, itemID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lock review record (learner %d, item %d): %w", learnerID, itemID, ErrRecordNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock review record (learner %d, item %d): %w", learnerID, itemID, err)
		}

		mutate(&record)

		_, err = tx.ExecContext(ctx,
			`UPDATE review_records
			SET level = ?, next_due_at = ?, correct_count = ?, wrong_count = ?, updated_at = ?
			WHERE record_id = ?`,
			record.Level, record.NextDueAt, record.CorrectCount, record.WrongCount, record.UpdatedAt,
			record.RecordID,
		)
		if err != nil {
			return fmt.Errorf("update review record %d: %w", record.RecordID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListDue returns the learner's due records, most overdue first.
func (r *DBReviewRepository) ListDue(ctx context.Context, learnerID int64, asOf time.Time, limit int) ([]ReviewRecord, error) {
	var records []ReviewRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM review_records
		WHERE learner_id = ? AND next_due_at <= ?
		ORDER BY next_due_at ASC
		LIMIT ?`,
		learnerID, asOf, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list due review records (learner %d): %w", learnerID, err)
	}
	return records, nil
}

// FindAllByLearner returns all records for the learner, oldest first.
func (r *DBReviewRepository) FindAllByLearner(ctx context.Context, learnerID int64) ([]ReviewRecord, error) {
	var records []ReviewRecord
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM review_records WHERE learner_id = ? ORDER BY record_id",
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("load review records (learner %d): %w", learnerID, err)
	}
	return records, nil
}

// Progress aggregates counters for the learner. A single SELECT keeps the
// counts internally consistent.
func (r *DBReviewRepository) Progress(ctx context.Context, learnerID int64, asOf time.Time) (Progress, error) {
	var progress Progress
	err := r.db.GetContext(ctx, &progress,
		`SELECT
			COALESCE(SUM(CASE WHEN next_due_at <= ? THEN 1 ELSE 0 END), 0) AS pending_count,
			COUNT(*) AS total_count,
			COALESCE(SUM(correct_count), 0) AS total_correct,
			COALESCE(SUM(wrong_count), 0) AS total_wrong
		FROM review_records
		WHERE learner_id = ?`,
		asOf, learnerID,
	)
	if err != nil {
		return Progress{}, fmt.Errorf("aggregate review progress (learner %d): %w", learnerID, err)
	}
	return progress, nil
}
