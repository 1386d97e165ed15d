package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguapix/reviewd/internal/config"
	"github.com/linguapix/reviewd/internal/review"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, retryAttempts uint) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(config.ClientConfig{
		BaseURL:       server.URL,
		RetryAttempts: retryAttempts,
		TimeoutSecs:   5,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_Enroll(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("posts the level and decodes the record", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/learners/7/items/42/enrollment", r.URL.Path)

			var body map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 3, body["level"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(review.ReviewRecord{
				RecordID:  1,
				LearnerID: 7,
				ItemID:    42,
				Level:     3,
				NextDueAt: now.Add(24 * time.Hour),
			})
		}, 0)

		record, err := c.Enroll(context.Background(), 7, 42, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(1), record.RecordID)
		assert.Equal(t, 3, record.Level)
		assert.Equal(t, now.Add(24*time.Hour), record.NextDueAt.UTC())
	})

	t.Run("a 400 is not retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "level 99 out of range"})
		}, 3)

		_, err := c.Enroll(context.Background(), 7, 42, 99)

		require.Error(t, err)
		assert.ErrorContains(t, err, "response error 400")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("a 500 is retried until the server recovers", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(review.ReviewRecord{RecordID: 1, ItemID: 42})
		}, 2)

		record, err := c.Enroll(context.Background(), 7, 42, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(42), record.ItemID)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestClient_GetDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/learners/7/reviews", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]review.ReviewRecord{
			{RecordID: 2, ItemID: 11, NextDueAt: now.Add(-time.Hour)},
			{RecordID: 1, ItemID: 10, NextDueAt: now.Add(-time.Minute)},
		})
	}, 0)

	records, err := c.GetDue(context.Background(), 7, 5)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(11), records[0].ItemID)
	assert.Equal(t, int64(10), records[1].ItemID)
}

func TestClient_SubmitOutcome(t *testing.T) {
	t.Run("posts the outcome and decodes the updated record", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/learners/7/items/42/outcomes", r.URL.Path)

			var body map[string]bool
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.True(t, body["is_correct"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(review.ReviewRecord{
				RecordID:     1,
				ItemID:       42,
				Level:        3,
				CorrectCount: 4,
			})
		}, 0)

		record, err := c.SubmitOutcome(context.Background(), 7, 42, true)

		require.NoError(t, err)
		assert.Equal(t, 3, record.Level)
		assert.Equal(t, 4, record.CorrectCount)
	})

	t.Run("server failure surfaces after retries run out", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}, 1)

		_, err := c.SubmitOutcome(context.Background(), 7, 42, false)

		require.Error(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestClient_GetProgress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/learners/7/progress", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(review.Progress{
			PendingCount: 3,
			TotalCount:   12,
			TotalCorrect: 40,
			TotalWrong:   9,
		})
	}, 0)

	progress, err := c.GetProgress(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, review.Progress{PendingCount: 3, TotalCount: 12, TotalCorrect: 40, TotalWrong: 9}, progress)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "connection refused", err: stringError("dial tcp: connection refused"), want: true},
		{name: "timeout", err: stringError("read tcp: i/o timeout"), want: true},
		{name: "server error", err: stringError("response error 503: unavailable"), want: true},
		{name: "throttled", err: stringError("response error 429: slow down"), want: true},
		{name: "client error", err: stringError("response error 400: bad request"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

type stringError string

func (e stringError) Error() string { return string(e) }
