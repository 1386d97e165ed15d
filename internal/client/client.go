// Package client provides an HTTP client for the reviewd API.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/linguapix/reviewd/internal/config"
	"github.com/linguapix/reviewd/internal/review"
)

// Client calls the reviewd server. Transient failures are retried with
// backoff; validation rejections are not.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

// NewClient creates a Client from the client config section.
func NewClient(cfg config.ClientConfig) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(cfg.BaseURL)
	httpClient.SetHeader("Content-Type", "application/json")
	if cfg.TimeoutSecs > 0 {
		httpClient.SetTimeout(time.Duration(cfg.TimeoutSecs) * time.Second)
	}

	return &Client{
		httpClient:       httpClient,
		maxRetryAttempts: cfg.RetryAttempts,
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

func (c *Client) do(ctx context.Context, fn func() error) error {
	return retry.Do(
		func() error {
			if err := fn(); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.DelayType(retry.BackOffDelay),
	)
}

// Enroll creates (or returns the existing) review record for the pair.
func (c *Client) Enroll(ctx context.Context, learnerID, itemID int64, level int) (review.ReviewRecord, error) {
	var record review.ReviewRecord
	err := c.do(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(map[string]int{"level": level}).
			SetResult(&record).
			Post(fmt.Sprintf("/v1/learners/%d/items/%d/enrollment", learnerID, itemID))
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		return nil
	})
	if err != nil {
		return review.ReviewRecord{}, err
	}
	return record, nil
}

// GetDue returns the learner's due records, most overdue first.
func (c *Client) GetDue(ctx context.Context, learnerID int64, limit int) ([]review.ReviewRecord, error) {
	var records []review.ReviewRecord
	err := c.do(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetQueryParam("limit", fmt.Sprintf("%d", limit)).
			SetResult(&records).
			Get(fmt.Sprintf("/v1/learners/%d/reviews", learnerID))
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SubmitOutcome reports a review outcome and returns the updated record.
func (c *Client) SubmitOutcome(ctx context.Context, learnerID, itemID int64, isCorrect bool) (review.ReviewRecord, error) {
	var record review.ReviewRecord
	err := c.do(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(map[string]bool{"is_correct": isCorrect}).
			SetResult(&record).
			Post(fmt.Sprintf("/v1/learners/%d/items/%d/outcomes", learnerID, itemID))
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		return nil
	})
	if err != nil {
		return review.ReviewRecord{}, err
	}
	return record, nil
}

// GetProgress returns the learner's aggregate progress counters.
func (c *Client) GetProgress(ctx context.Context, learnerID int64) (review.Progress, error) {
	var progress review.Progress
	err := c.do(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetResult(&progress).
			Get(fmt.Sprintf("/v1/learners/%d/progress", learnerID))
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		return nil
	})
	if err != nil {
		return review.Progress{}, err
	}
	return progress, nil
}
