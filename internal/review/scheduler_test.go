package review_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_review "github.com/linguapix/reviewd/internal/mocks/review"
	"github.com/linguapix/reviewd/internal/review"
)

var testIntervals = []time.Duration{
	0, 30 * time.Minute, 12 * time.Hour, 24 * time.Hour, 48 * time.Hour,
	72 * time.Hour, 7 * 24 * time.Hour, 14 * 24 * time.Hour, 30 * 24 * time.Hour,
}

func newTestScheduler(t *testing.T, repo review.ReviewRepository, now time.Time) *review.Scheduler {
	t.Helper()
	policy := review.MustNewIntervalPolicy(testIntervals)
	return review.NewScheduler(repo, policy).WithClock(func() time.Time { return now })
}

func TestScheduler_Enroll(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("creates a record at level 0 due immediately", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_review.NewMockReviewRepository(ctrl)
		repo.EXPECT().Find(gomock.Any(), int64(1), int64(10)).Return(nil, review.ErrRecordNotFound)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *review.ReviewRecord) error {
				record.RecordID = 100
				return nil
			})

		scheduler := newTestScheduler(t, repo, now)
		record, err := scheduler.Enroll(context.Background(), 1, 10, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(100), record.RecordID)
		assert.Equal(t, 0, record.Level)
		assert.Equal(t, now, record.NextDueAt)
		assert.Equal(t, 0, record.CorrectCount)
		assert.Equal(t, 0, record.WrongCount)
	})

	t.Run("creates a record at a higher level with the policy delay", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_review.NewMockReviewRepository(ctrl)
		repo.EXPECT().Find(gomock.Any(), int64(1), int64(10)).Return(nil, review.ErrRecordNotFound)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		scheduler := newTestScheduler(t, repo, now)
		record, err := scheduler.Enroll(context.Background(), 1, 10, 2)

		require.NoError(t, err)
		assert.Equal(t, 2, record.Level)
		assert.Equal(t, now.Add(12*time.Hour), record.NextDueAt)
	})

	t.Run("returns the existing record unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		existing := &review.ReviewRecord{
			RecordID: 7, LearnerID: 1, ItemID: 10, Level: 4,
			NextDueAt:    now.Add(48 * time.Hour),
			CorrectCount: 5, WrongCount: 1,
		}
		repo := mock_review.NewMockReviewRepository(ctrl)
		repo.EXPECT().Find(gomock.Any(), int64(1), int64(10)).Return(existing, nil)

		scheduler := newTestScheduler(t, repo, now)
		record, err := scheduler.Enroll(context.Background(), 1, 10, 0)

		require.NoError(t, err)
		assert.Equal(t, existing, record)
	})

	t.Run("losing the create race returns the winner's record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		winner := &review.ReviewRecord{RecordID: 8, LearnerID: 1, ItemID: 10}
		repo := mock_review.NewMockReviewRepository(ctrl)
		gomock.InOrder(
			repo.EXPECT().Find(gomock.Any(), int64(1), int64(10)).Return(nil, review.ErrRecordNotFound),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).
				Return(fmt.Errorf("insert: %w", review.ErrDuplicateRecord)),
			repo.EXPECT().Find(gomock.Any(), int64(1), int64(10)).Return(winner, nil),
		)

		scheduler := newTestScheduler(t, repo, now)
		record, err := scheduler.Enroll(context.Background(), 1, 10, 0)

		require.NoError(t, err)
		assert.Equal(t, winner, record)
	})

	t.Run("rejects a level outside the interval table", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_review.NewMockReviewRepository(ctrl)

		scheduler := newTestScheduler(t, repo, now)

		_, err := scheduler.Enroll(context.Background(), 1, 10, len(testIntervals))
		assert.ErrorIs(t, err, review.ErrInvalidArgument)

		_, err = scheduler.Enroll(context.Background(), 1, 10, -1)
		assert.ErrorIs(t, err, review.ErrInvalidArgument)
	})

	t.Run("persistence failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_review.NewMockReviewRepository(ctrl)
		repo.EXPECT().Find(gomock.Any(), int64(1), int64(10)).
			Return(nil, fmt.Errorf("connection refused"))

		scheduler := newTestScheduler(t, repo, now)
		_, err := scheduler.Enroll(context.Background(), 1, 10, 0)
		assert.Error(t, err)
	})
}

func TestScheduler_GetDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("passes the current time and limit through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		due := []review.ReviewRecord{
			{ItemID: 10, NextDueAt: now.Add(-time.Hour)},
			{ItemID: 11, NextDueAt: now.Add(-10 * time.Minute)},
		}
		repo := mock_review.NewMockReviewRepository(ctrl)
		repo.EXPECT().ListDue(gomock.Any(), int64(1), now, 20).Return(due, nil)

		scheduler := newTestScheduler(t, repo, now)
		records, err := scheduler.GetDue(context.Background(), 1, 20)

		require.NoError(t, err)
		assert.Equal(t, due, records)
	})

	t.Run("rejects a non-positive limit before touching the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_review.NewMockReviewRepository(ctrl)

		scheduler := newTestScheduler(t, repo, now)

		for _, limit := range []int{0, -1} {
			_, err := scheduler.GetDue(context.Background(), 1, limit)
			assert.ErrorIs(t, err, review.ErrInvalidArgument)
		}
	})
}

func TestScheduler_SubmitOutcome(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	// applyMutate runs the scheduler's mutate callback against a copy of
	// the stored record, the way the repository does inside its
	// transaction.
	applyMutate := func(stored review.ReviewRecord) func(ctx context.Context, learnerID, itemID int64, mutate func(*review.ReviewRecord)) (*review.ReviewRecord, error) {
		return func(_ context.Context, _, _ int64, mutate func(*review.ReviewRecord)) (*review.ReviewRecord, error) {
			record := stored
			mutate(&record)
			return &record, nil
		}
	}

	tests := []struct {
		name             string
		stored           review.ReviewRecord
		isCorrect        bool
		wantLevel        int
		wantCorrectCount int
		wantWrongCount   int
		wantDueIn        time.Duration
	}{
		{
			name:             "correct advances the level",
			stored:           review.ReviewRecord{RecordID: 1, Level: 1, CorrectCount: 3, WrongCount: 2},
			isCorrect:        true,
			wantLevel:        2,
			wantCorrectCount: 4,
			wantWrongCount:   2,
			wantDueIn:        12 * time.Hour,
		},
		{
			name:             "wrong regresses the level",
			stored:           review.ReviewRecord{RecordID: 1, Level: 2, CorrectCount: 3, WrongCount: 2},
			isCorrect:        false,
			wantLevel:        1,
			wantCorrectCount: 3,
			wantWrongCount:   3,
			wantDueIn:        30 * time.Minute,
		},
		{
			name:             "correct at the top level stays at the top level",
			stored:           review.ReviewRecord{RecordID: 1, Level: 8, CorrectCount: 20},
			isCorrect:        true,
			wantLevel:        8,
			wantCorrectCount: 21,
			wantDueIn:        30 * 24 * time.Hour,
		},
		{
			name:           "wrong at level 0 stays at level 0",
			stored:         review.ReviewRecord{RecordID: 1, Level: 0, WrongCount: 4},
			isCorrect:      false,
			wantLevel:      0,
			wantWrongCount: 5,
			wantDueIn:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_review.NewMockReviewRepository(ctrl)
			repo.EXPECT().UpdateAtomically(gomock.Any(), int64(1), int64(10), gomock.Any()).
				DoAndReturn(applyMutate(tt.stored))

			scheduler := newTestScheduler(t, repo, now)
			record, err := scheduler.SubmitOutcome(context.Background(), 1, 10, tt.isCorrect)

			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, record.Level)
			assert.Equal(t, tt.wantCorrectCount, record.CorrectCount)
			assert.Equal(t, tt.wantWrongCount, record.WrongCount)
			assert.Equal(t, now.Add(tt.wantDueIn), record.NextDueAt)
		})
	}

	t.Run("due time does not depend on the previous due time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		// Long overdue record: the new due time is computed from now.
		stored := review.ReviewRecord{RecordID: 1, Level: 0, NextDueAt: now.Add(-30 * 24 * time.Hour)}
		repo := mock_review.NewMockReviewRepository(ctrl)
		repo.EXPECT().UpdateAtomically(gomock.Any(), int64(1), int64(10), gomock.Any()).
			DoAndReturn(applyMutate(stored))

		scheduler := newTestScheduler(t, repo, now)
		record, err := scheduler.SubmitOutcome(context.Background(), 1, 10, true)

		require.NoError(t, err)
		assert.Equal(t, now.Add(30*time.Minute), record.NextDueAt)
	})

	t.Run("missing record heals into a fresh level 0 record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_review.NewMockReviewRepository(ctrl)
		gomock.InOrder(
			repo.EXPECT().UpdateAtomically(gomock.Any(), int64(1), int64(10), gomock.Any()).
				Return(nil, review.ErrRecordNotFound),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		)

		scheduler := newTestScheduler(t, repo, now)
		record, err := scheduler.SubmitOutcome(context.Background(), 1, 10, true)

		require.NoError(t, err)
		assert.Equal(t, 0, record.Level)
		assert.Equal(t, now, record.NextDueAt)
		// The triggering outcome is not applied to the healed record.
		assert.Equal(t, 0, record.CorrectCount)
		assert.Equal(t, 0, record.WrongCount)
	})

	t.Run("losing the heal race applies the outcome to the winner's record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		winner := review.ReviewRecord{RecordID: 9, Level: 0}
		repo := mock_review.NewMockReviewRepository(ctrl)
		gomock.InOrder(
			repo.EXPECT().UpdateAtomically(gomock.Any(), int64(1), int64(10), gomock.Any()).
				Return(nil, review.ErrRecordNotFound),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(review.ErrDuplicateRecord),
			repo.EXPECT().UpdateAtomically(gomock.Any(), int64(1), int64(10), gomock.Any()).
				DoAndReturn(applyMutate(winner)),
		)

		scheduler := newTestScheduler(t, repo, now)
		record, err := scheduler.SubmitOutcome(context.Background(), 1, 10, true)

		require.NoError(t, err)
		assert.Equal(t, 1, record.Level)
		assert.Equal(t, 1, record.CorrectCount)
	})

	t.Run("persistence failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_review.NewMockReviewRepository(ctrl)
		repo.EXPECT().UpdateAtomically(gomock.Any(), int64(1), int64(10), gomock.Any()).
			Return(nil, fmt.Errorf("deadlock found"))

		scheduler := newTestScheduler(t, repo, now)
		_, err := scheduler.SubmitOutcome(context.Background(), 1, 10, true)
		assert.Error(t, err)
	})
}

func TestScheduler_LevelBoundsUnderAnyOutcomeSequence(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	outcomes := []bool{
		false, true, true, true, true, true, true, true, true, true,
		true, true, false, false, false, false, false, false, false,
		false, false, false, true,
	}

	stored := review.ReviewRecord{RecordID: 1, Level: 0}
	ctrl := gomock.NewController(t)
	repo := mock_review.NewMockReviewRepository(ctrl)
	repo.EXPECT().UpdateAtomically(gomock.Any(), int64(1), int64(10), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, mutate func(*review.ReviewRecord)) (*review.ReviewRecord, error) {
			mutate(&stored)
			record := stored
			return &record, nil
		}).Times(len(outcomes))

	scheduler := newTestScheduler(t, repo, now)
	submissions := 0
	for _, isCorrect := range outcomes {
		record, err := scheduler.SubmitOutcome(context.Background(), 1, 10, isCorrect)
		require.NoError(t, err)
		submissions++

		assert.GreaterOrEqual(t, record.Level, 0)
		assert.LessOrEqual(t, record.Level, 8)
		assert.Equal(t, submissions, record.CorrectCount+record.WrongCount)
	}
}

func TestScheduler_GetProgress(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	want := review.Progress{PendingCount: 3, TotalCount: 12, TotalCorrect: 40, TotalWrong: 9}
	repo := mock_review.NewMockReviewRepository(ctrl)
	repo.EXPECT().Progress(gomock.Any(), int64(1), now).Return(want, nil)

	scheduler := newTestScheduler(t, repo, now)
	progress, err := scheduler.GetProgress(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, want, progress)
	assert.LessOrEqual(t, progress.PendingCount, progress.TotalCount)
}
