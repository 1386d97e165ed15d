package review

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Scheduler implements the four review operations on top of a
// ReviewRepository and an IntervalPolicy. Every due time is derived from
// the current time and the policy; it never depends on a record's
// previous due time, so a late review does not compound its delay.
type Scheduler struct {
	repository ReviewRepository
	policy     *IntervalPolicy
	now        func() time.Time
}

// NewScheduler creates a Scheduler using the given repository and policy.
func NewScheduler(repository ReviewRepository, policy *IntervalPolicy) *Scheduler {
	return &Scheduler{
		repository: repository,
		policy:     policy,
		now:        time.Now,
	}
}

// WithClock replaces the scheduler's time source. For tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Policy returns the scheduler's interval policy.
func (s *Scheduler) Policy() *IntervalPolicy {
	return s.policy
}

// Enroll creates a review record for the pair at the given level, due
// after the policy delay for that level (immediately for level 0). It is
// idempotent: an existing record is returned unchanged. When two callers
// race on the same pair, the uniqueness constraint picks a winner and the
// loser returns the winner's record.
func (s *Scheduler) Enroll(ctx context.Context, learnerID, itemID int64, level int) (*ReviewRecord, error) {
	if level < 0 || level > s.policy.MaxLevel() {
		return nil, fmt.Errorf("%w: level %d out of range [0, %d]", ErrInvalidArgument, level, s.policy.MaxLevel())
	}

	existing, err := s.repository.Find(ctx, learnerID, itemID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	record := s.newRecord(learnerID, itemID, level)
	if err := s.repository.Create(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateRecord) {
			return s.repository.Find(ctx, learnerID, itemID)
		}
		return nil, err
	}
	return record, nil
}

// GetDue returns up to limit of the learner's due records, most overdue
// first. The result is a snapshot; it has no side effects.
func (s *Scheduler) GetDue(ctx context.Context, learnerID int64, limit int) ([]ReviewRecord, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}
	return s.repository.ListDue(ctx, learnerID, s.now().UTC(), limit)
}

// SubmitOutcome records a review outcome for the pair: a correct answer
// advances the level (capped at the top of the interval table), a wrong
// answer regresses it (floored at 0), and the next due time is recomputed
// from now in either case.
//
// A missing record is healed by enrolling the pair at level 0; the
// triggering outcome is not applied to the fresh record, matching
// enrollment semantics (the record returns with zero counters, due
// immediately).
func (s *Scheduler) SubmitOutcome(ctx context.Context, learnerID, itemID int64, isCorrect bool) (*ReviewRecord, error) {
	for {
		record, err := s.repository.UpdateAtomically(ctx, learnerID, itemID, func(r *ReviewRecord) {
			s.applyOutcome(r, isCorrect)
		})
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, ErrRecordNotFound) {
			return nil, err
		}

		healed := s.newRecord(learnerID, itemID, 0)
		err = s.repository.Create(ctx, healed)
		if err == nil {
			return healed, nil
		}
		if !errors.Is(err, ErrDuplicateRecord) {
			return nil, err
		}
		// A concurrent writer created the record between the locked read
		// and the insert; it exists now, so apply the outcome normally.
	}
}

// GetProgress returns the learner's aggregate counters as a consistent
// point-in-time view.
func (s *Scheduler) GetProgress(ctx context.Context, learnerID int64) (Progress, error) {
	return s.repository.Progress(ctx, learnerID, s.now().UTC())
}

func (s *Scheduler) newRecord(learnerID, itemID int64, level int) *ReviewRecord {
	now := s.now().UTC()
	return &ReviewRecord{
		LearnerID: learnerID,
		ItemID:    itemID,
		Level:     level,
		NextDueAt: now.Add(s.policy.DelayFor(level)),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Scheduler) applyOutcome(record *ReviewRecord, isCorrect bool) {
	if isCorrect {
		record.CorrectCount++
		record.Level = s.policy.ClampLevel(record.Level + 1)
	} else {
		record.WrongCount++
		record.Level = s.policy.ClampLevel(record.Level - 1)
	}

	now := s.now().UTC()
	record.NextDueAt = now.Add(s.policy.DelayFor(record.Level))
	record.UpdatedAt = now
}
