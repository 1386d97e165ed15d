// Package review implements the spaced-repetition review scheduler:
// per-(learner, item) mastery records, the forgetting-curve interval
// policy, and the operations that move records through it.
package review

import (
	"fmt"
	"time"
)

// DefaultIntervals approximates the Ebbinghaus forgetting curve. Index 0
// is zero so a freshly enrolled (or fully regressed) record is due
// immediately.
var DefaultIntervals = []time.Duration{
	0,
	30 * time.Minute,
	12 * time.Hour,
	24 * time.Hour,
	48 * time.Hour,
	72 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

// IntervalPolicy maps a mastery level to the delay before the next review.
// The table is fixed at construction time; every operation that computes a
// due time goes through the same instance.
type IntervalPolicy struct {
	intervals []time.Duration
}

// NewIntervalPolicy validates and wraps an interval table. The table must
// be non-empty and strictly increasing, except that the first entry may be
// zero.
func NewIntervalPolicy(intervals []time.Duration) (*IntervalPolicy, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("%w: interval table must not be empty", ErrInvalidArgument)
	}
	if intervals[0] < 0 {
		return nil, fmt.Errorf("%w: interval[0] must not be negative", ErrInvalidArgument)
	}
	for i := 1; i < len(intervals); i++ {
		if intervals[i] <= intervals[i-1] {
			return nil, fmt.Errorf("%w: interval[%d] (%s) must be greater than interval[%d] (%s)",
				ErrInvalidArgument, i, intervals[i], i-1, intervals[i-1])
		}
	}

	copied := make([]time.Duration, len(intervals))
	copy(copied, intervals)
	return &IntervalPolicy{intervals: copied}, nil
}

// MustNewIntervalPolicy is NewIntervalPolicy that panics on error, for
// wiring known-good tables.
func MustNewIntervalPolicy(intervals []time.Duration) *IntervalPolicy {
	policy, err := NewIntervalPolicy(intervals)
	if err != nil {
		panic(err)
	}
	return policy
}

// Levels returns the number of levels in the table.
func (p *IntervalPolicy) Levels() int {
	return len(p.intervals)
}

// MaxLevel returns the highest valid mastery level.
func (p *IntervalPolicy) MaxLevel() int {
	return len(p.intervals) - 1
}

// DelayFor returns the review delay for the given level. Levels outside
// the table are clamped, so a level beyond the last index maps to the
// longest delay and a negative level maps to the shortest.
func (p *IntervalPolicy) DelayFor(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	if level > p.MaxLevel() {
		level = p.MaxLevel()
	}
	return p.intervals[level]
}

// ClampLevel constrains a level to the valid range [0, MaxLevel].
func (p *IntervalPolicy) ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > p.MaxLevel() {
		return p.MaxLevel()
	}
	return level
}
