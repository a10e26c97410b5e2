package storelink

import (
	"errors"
	"fmt"

	"github.com/storelink/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAuthToken is returned when no auth token is provided.
	ErrMissingAuthToken = errors.New("auth token is required")

	// ErrUnauthorized is returned when the auth token is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired auth token")

	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrRateLimited is returned when the platform rejects a request for
	// exceeding the rate limit, after the retry budget is spent.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// StoreLinkError is implemented by all SDK errors.
type StoreLinkError interface {
	error
	StoreLinkError() // marker method
}

// APIError represents a non-2xx HTTP response from the StoreLink API.
// The status code, URL, and raw response body are preserved unchanged
// from the failing attempt so integration errors can be reported apart
// from application logic failures.
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
	return fmt.Sprintf("API error %d on %s", e.StatusCode, e.URL)
}

// StoreLinkError implements the StoreLinkError interface.
func (e *APIError) StoreLinkError() {}

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

// NetworkError represents a network-level failure: the request never
// produced an HTTP status code.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StoreLinkError implements the StoreLinkError interface.
func (e *NetworkError) StoreLinkError() {}

// wrapError converts internal API errors to public errors. This ensures
// that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return publicAPIError(apiErr)
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err: netErr.Err,
			URL: netErr.URL,
		}
	}

	return err
}

func publicAPIError(e *api.APIError) *APIError {
	return &APIError{
		StatusCode:   e.StatusCode,
		URL:          e.URL,
		Message:      e.Message,
		ResponseText: e.ResponseText,
		TraceID:      e.TraceID,
		RequestID:    e.RequestID,
	}
}
