package storelink

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/storelink/client-go/internal/ratelimit"
)

// DefaultBaseURL is the production StoreLink B2B API endpoint.
const DefaultBaseURL = "https://api.retailtech.storelink.com"

// Default request budget and retry policy, matching the platform's
// documented limits.
const (
	DefaultMaxRequestsPerSecond = 5
	DefaultMaxRetries           = 3
	DefaultRetryDelay           = time.Second
)

// RateLimiter bounds admissions to the platform's per-second request
// budget, independently for every (auth token, endpoint) pair. A single
// RateLimiter may be shared between several clients so they draw from one
// budget; clients constructed with their own limiter are throttled
// independently.
type RateLimiter struct {
	limiter *ratelimit.Limiter
}

// NewRateLimiter creates a limiter admitting maxPerSecond requests per
// (auth token, endpoint) pair per trailing second.
func NewRateLimiter(maxPerSecond int) *RateLimiter {
	return &RateLimiter{limiter: ratelimit.New(maxPerSecond)}
}

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	retryOn     []int
	rateLimiter *RateLimiter
	logger      *zap.Logger
	onAPIError  func(*APIError)
}

// waitConfig holds configuration for waiting on order states.
type waitConfig struct {
	timeout      time.Duration
	pollInterval time.Duration
}

// watchConfig holds configuration for watching event feeds.
type watchConfig struct {
	interval   time.Duration
	maxBackoff time.Duration
	multiplier float64
	jitter     float64
	cursor     string
}

// Option configures the client.
type Option func(*clientConfig)

// WaitOption configures order-state waiting.
type WaitOption func(*waitConfig)

// WatchOption configures event watching.
type WatchOption func(*watchConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Use this to configure proxies,
// TLS settings, or connection pooling.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of re-attempts after a failed request.
// A request is tried at most count+1 times in total.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.maxRetries = count
	}
}

// WithRetryDelay sets the fixed pause between attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [429, 500]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithRateLimit enables client-side rate limiting with a limiter owned by
// this client, admitting maxPerSecond requests per endpoint per second.
func WithRateLimit(maxPerSecond int) Option {
	return func(c *clientConfig) {
		c.rateLimiter = NewRateLimiter(maxPerSecond)
	}
}

// WithRateLimiter enables client-side rate limiting with an existing
// limiter, letting several clients share one request budget.
func WithRateLimiter(limiter *RateLimiter) Option {
	return func(c *clientConfig) {
		c.rateLimiter = limiter
	}
}

// WithLogger sets the structured logger used for retry warnings and batch
// progress. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithErrorHandler registers a hook invoked for every non-2xx API
// response, including ones that are later retried. This is useful for
// logging all integration errors separately from other errors.
func WithErrorHandler(fn func(*APIError)) Option {
	return func(c *clientConfig) {
		c.onAPIError = fn
	}
}

// WithWaitTimeout sets the timeout for waiting.
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the polling interval.
func WithPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.pollInterval = interval
	}
}

// WithWatchInterval sets the base interval between event queries.
// Default: 2 seconds
func WithWatchInterval(interval time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.interval = interval
	}
}

// WithWatchMaxBackoff sets the maximum interval between event queries.
// When a poll returns no events, the interval grows up to this maximum.
// Default: 30 seconds
func WithWatchMaxBackoff(maxBackoff time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.maxBackoff = maxBackoff
	}
}

// WithWatchBackoffMultiplier sets the factor applied to the interval after
// each empty poll. Default: 1.5
func WithWatchBackoffMultiplier(multiplier float64) WatchOption {
	return func(c *watchConfig) {
		c.multiplier = multiplier
	}
}

// WithWatchJitterFactor sets the random jitter added to each interval, as
// a fraction of the interval, to prevent synchronized polling across
// multiple watchers. Default: 0.3 (30%)
func WithWatchJitterFactor(factor float64) WatchOption {
	return func(c *watchConfig) {
		c.jitter = factor
	}
}

// WithWatchCursor resumes watching from a previously observed cursor
// instead of the feed's current tail.
func WithWatchCursor(cursor string) WatchOption {
	return func(c *watchConfig) {
		c.cursor = cursor
	}
}
