package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fastRetry returns a config with a short delay so tests stay quick.
func fastRetry(maxRetries int, statuses ...int) *RetryConfig {
	retryable := make(map[int]bool, len(statuses))
	for _, s := range statuses {
		retryable[s] = true
	}
	return &RetryConfig{
		MaxRetries:  maxRetries,
		Delay:       10 * time.Millisecond,
		RetryableOn: func(status int) bool { return retryable[status] },
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.Delay != time.Second {
		t.Errorf("Delay = %v, want 1s", cfg.Delay)
	}

	for _, status := range []int{429, 500} {
		if !cfg.RetryableOn(status) {
			t.Errorf("RetryableOn(%d) = false, want true", status)
		}
	}
	for _, status := range []int{400, 401, 404, 502, 503} {
		if cfg.RetryableOn(status) {
			t.Errorf("RetryableOn(%d) = true, want false", status)
		}
	}
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := DefaultRetryConfig()

	tests := []struct {
		name       string
		attempt    int
		statusCode int
		expected   bool
	}{
		{"first attempt, retryable", 0, 429, true},
		{"second attempt, retryable", 1, 500, true},
		{"third attempt, retryable", 2, 429, true},
		{"budget exhausted", 3, 429, false},
		{"over budget", 4, 500, false},
		{"non-retryable 400", 0, 400, false},
		{"non-retryable 404", 0, 404, false},
		{"non-retryable 503", 0, 503, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ShouldRetry(tt.attempt, tt.statusCode); got != tt.expected {
				t.Errorf("ShouldRetry(%d, %d) = %v, want %v",
					tt.attempt, tt.statusCode, got, tt.expected)
			}
		})
	}
}

func TestExecute_SuccessFirstAttempt(t *testing.T) {
	cfg := fastRetry(3, 429, 500)

	calls := 0
	err := cfg.Execute(context.Background(), zap.NewNop(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("action called %d times, want 1", calls)
	}
}

func TestExecute_TerminalStatusNotRetried(t *testing.T) {
	cfg := fastRetry(3, 429, 500)

	terminal := &APIError{StatusCode: 400, URL: "https://api/x", Message: "bad request"}
	calls := 0
	err := cfg.Execute(context.Background(), zap.NewNop(), func(ctx context.Context) error {
		calls++
		return terminal
	})

	if calls != 1 {
		t.Errorf("action called %d times, want 1", calls)
	}
	if err != terminal {
		t.Errorf("Execute() error = %v, want the original terminal error", err)
	}
}

func TestExecute_NonAPIErrorNotRetried(t *testing.T) {
	cfg := fastRetry(3, 429, 500)

	netErr := &NetworkError{Err: errors.New("connection refused"), URL: "https://api/x"}
	calls := 0
	err := cfg.Execute(context.Background(), zap.NewNop(), func(ctx context.Context) error {
		calls++
		return netErr
	})

	if calls != 1 {
		t.Errorf("action called %d times, want 1", calls)
	}
	if err != netErr {
		t.Errorf("Execute() error = %v, want the network error unchanged", err)
	}
}

func TestExecute_ExhaustsRetryBudget(t *testing.T) {
	const maxRetries = 3
	cfg := fastRetry(maxRetries, 429)

	calls := 0
	var lastErr error
	err := cfg.Execute(context.Background(), zap.NewNop(), func(ctx context.Context) error {
		calls++
		lastErr = &APIError{StatusCode: 429, URL: "https://api/x", Message: "too many requests"}
		return lastErr
	})

	if calls != maxRetries+1 {
		t.Errorf("action called %d times, want %d", calls, maxRetries+1)
	}
	if err != lastErr {
		t.Errorf("Execute() error = %v, want the last attempt's error", err)
	}
}

func TestExecute_RetryableThenSuccess(t *testing.T) {
	tests := []struct {
		name        string
		failures    int
		maxRetries  int
		wantCalls   int
		wantSuccess bool
	}{
		{"succeeds on 2nd attempt", 1, 3, 2, true},
		{"succeeds on last allowed attempt", 3, 3, 4, true},
		{"one failure too many", 2, 1, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fastRetry(tt.maxRetries, 429)

			calls := 0
			err := cfg.Execute(context.Background(), zap.NewNop(), func(ctx context.Context) error {
				calls++
				if calls <= tt.failures {
					return &APIError{StatusCode: 429, URL: "https://api/x"}
				}
				return nil
			})

			if calls != tt.wantCalls {
				t.Errorf("action called %d times, want %d", calls, tt.wantCalls)
			}
			if tt.wantSuccess && err != nil {
				t.Errorf("Execute() error = %v, want nil", err)
			}
			if !tt.wantSuccess && err == nil {
				t.Error("Execute() error = nil, want the last 429")
			}
		})
	}
}

func TestExecute_ContextCancelledDuringDelay(t *testing.T) {
	cfg := &RetryConfig{
		MaxRetries:  3,
		Delay:       time.Minute,
		RetryableOn: func(status int) bool { return status == 429 },
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	start := time.Now()
	err := cfg.Execute(ctx, zap.NewNop(), func(ctx context.Context) error {
		calls++
		return &APIError{StatusCode: 429, URL: "https://api/x"}
	})

	if calls != 1 {
		t.Errorf("action called %d times, want 1", calls)
	}
	if err != context.DeadlineExceeded {
		t.Errorf("Execute() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Execute() returned after %v, want ~50ms", elapsed)
	}
}
