package api

import (
	"errors"
	"fmt"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrUnauthorized indicates the auth token is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired auth token")
	// ErrRateLimited indicates the platform rejected the request for
	// exceeding the rate limit.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
)

// APIError represents a non-2xx response from the StoreLink API. It keeps
// the original status code, URL, and raw body so the caller's error
// reporting can act on them.
type APIError struct {
	StatusCode   int
	URL          string
	Message      string
	ResponseText string
	TraceID      string
	RequestID    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("status %d from StoreLink on %s", e.StatusCode, e.URL)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a failure below the HTTP layer: the request
// never produced a status code.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
