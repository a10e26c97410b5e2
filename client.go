package storelink

import (
	"time"

	"go.uber.org/zap"

	"github.com/storelink/client-go/internal/api"
	"github.com/storelink/client-go/internal/ratelimit"
)

// Batch sizes used when uploading entity collections. The platform caps
// the number of records per request; larger inputs are split
// transparently.
const (
	DefaultBatchSize = 100
	StocksBatchSize  = 1000
)

// Page sizes for cursor queries.
const (
	DefaultRequestLimit  = 100
	ProductsRequestLimit = 300
)

// Client is the StoreLink B2B API client. It is safe for concurrent use.
type Client struct {
	api    *api.Client
	logger *zap.Logger
}

// New creates a new StoreLink client authenticating with the given token.
//
// Rate limiting is off unless enabled with WithRateLimit or
// WithRateLimiter; transient failures (429 and 500 by default) are
// retried three times, one second apart.
func New(authToken string, opts ...Option) (*Client, error) {
	if authToken == "" {
		return nil, ErrMissingAuthToken
	}

	cfg := &clientConfig{
		baseURL:    DefaultBaseURL,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(authToken, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		api:    apiClient,
		logger: cfg.logger,
	}, nil
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(authToken string, cfg *clientConfig) (*api.Client, error) {
	retry := &api.RetryConfig{
		MaxRetries:  cfg.maxRetries,
		Delay:       cfg.retryDelay,
		RetryableOn: retryClassifier(cfg.retryOn),
	}

	var limiter *ratelimit.Limiter
	if cfg.rateLimiter != nil {
		limiter = cfg.rateLimiter.limiter
	}

	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithRetry(retry),
		api.WithLimiter(limiter),
		api.WithLogger(cfg.logger),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.onAPIError != nil {
		hook := cfg.onAPIError
		apiOpts = append(apiOpts, api.WithErrorHandler(func(e *api.APIError) {
			hook(publicAPIError(e))
		}))
	}

	apiClient, err := api.New(authToken, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// retryClassifier builds the retryable-status predicate. The retryable
// set is closed: anything outside it is terminal and never retried.
func retryClassifier(statusCodes []int) func(int) bool {
	if len(statusCodes) == 0 {
		statusCodes = []int{429, 500}
	}
	retryable := make(map[int]bool, len(statusCodes))
	for _, code := range statusCodes {
		retryable[code] = true
	}
	return func(status int) bool {
		return retryable[status]
	}
}

// defaultWaitConfig returns the polling defaults for wait helpers.
func defaultWaitConfig() *waitConfig {
	return &waitConfig{
		timeout:      60 * time.Second,
		pollInterval: 2 * time.Second,
	}
}

// batches splits items into slices of at most size elements, preserving
// order.
func batches[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
