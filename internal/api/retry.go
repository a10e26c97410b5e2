package api

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// RetryConfig configures retry behavior for failed HTTP requests.
type RetryConfig struct {
	// MaxRetries is the maximum number of re-attempts after the first
	// failed attempt, so a request is tried at most MaxRetries+1 times.
	MaxRetries int
	// Delay is the fixed pause between attempts.
	Delay time.Duration
	// RetryableOn reports whether a status code should trigger a retry.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryConfig returns the retry policy the platform documents:
// three retries, one second apart, on 429 and 500.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		Delay:      time.Second,
		RetryableOn: func(statusCode int) bool {
			switch statusCode {
			case 429, 500:
				return true
			default:
				return false
			}
		},
	}
}

// ShouldRetry determines if a request should be retried. attempt is
// zero-based: attempt 0 is the first call.
func (r *RetryConfig) ShouldRetry(attempt int, statusCode int) bool {
	if attempt >= r.MaxRetries {
		return false
	}
	return r.RetryableOn(statusCode)
}

// Wait pauses for the configured delay before the next attempt.
func (r *RetryConfig) Wait(ctx context.Context) error {
	timer := time.NewTimer(r.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Execute runs action, retrying on transient API failures.
//
// Only an *APIError whose status code passes RetryableOn is retried; any
// other failure — network errors, decode errors, non-retryable statuses —
// is terminal and propagates unchanged on the first attempt. When the
// retry budget runs out, the last observed error is returned.
//
// The action is expected to perform its own rate limiter acquisition, so
// re-attempts are themselves rate limited.
func (r *RetryConfig) Execute(ctx context.Context, logger *zap.Logger, action func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := action(ctx)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !r.ShouldRetry(attempt, apiErr.StatusCode) {
			return err
		}

		logger.Warn("request failed, retrying",
			zap.Int("status", apiErr.StatusCode),
			zap.String("url", apiErr.URL),
			zap.Int("attempt", attempt+1),
		)

		if err := r.Wait(ctx); err != nil {
			return err
		}
	}
}
