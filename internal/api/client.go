package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storelink/client-go/internal/ratelimit"
)

const defaultBaseURL = "https://api.retailtech.storelink.com"

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	retry      *RetryConfig
	limiter    *ratelimit.Limiter
	logger     *zap.Logger
	onAPIError func(*APIError)
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetry replaces the retry policy.
func WithRetry(cfg *RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithLimiter sets the rate limiter. A nil limiter disables client-side
// rate limiting entirely.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithErrorHandler registers a hook invoked for every non-2xx API
// response, before the error is returned (and before any retry). Useful
// for routing integration failures to dedicated logging.
func WithErrorHandler(fn func(*APIError)) Option {
	return func(c *Client) {
		c.onAPIError = fn
	}
}

// New creates a new API client.
func New(authToken string, opts ...Option) (*Client, error) {
	if authToken == "" {
		return nil, fmt.Errorf("auth token is required")
	}

	c := &Client{
		baseURL:   defaultBaseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry:  DefaultRetryConfig(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// AuthToken returns the token the client authenticates with.
func (c *Client) AuthToken() string {
	return c.authToken
}

// Do performs a JSON POST against endpoint and decodes the response into
// result (which may be nil). Transient failures are retried per the
// client's retry policy; every attempt re-acquires the rate limiter.
func (c *Client) Do(ctx context.Context, endpoint string, body, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	return c.retry.Execute(ctx, c.logger, func(ctx context.Context) error {
		return c.attempt(ctx, endpoint, "application/json", bytes.NewReader(payload), result)
	})
}

// DoMultipart performs a multipart form POST against endpoint, sending the
// given fields plus one file part, and decodes the response into result
// (which may be nil).
func (c *Client) DoMultipart(ctx context.Context, endpoint string, fields map[string]string, fileField, fileName string, file io.Reader, result any) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %q: %w", key, err)
		}
	}
	part, err := form.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file contents: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	// The body is buffered up front so retries can replay it.
	return c.retry.Execute(ctx, c.logger, func(ctx context.Context) error {
		return c.attempt(ctx, endpoint, form.FormDataContentType(), bytes.NewReader(buf.Bytes()), result)
	})
}

// attempt performs a single HTTP call: limiter admission, request,
// response classification.
func (c *Client) attempt(ctx context.Context, endpoint, contentType string, body io.Reader, result any) error {
	key := ratelimit.Key{Token: c.authToken, Endpoint: endpoint}
	if err := c.limiter.Acquire(ctx, key); err != nil {
		return err
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err, URL: url}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp, url, requestID)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response from %s: %w", url, err)
		}
	}

	return nil
}

// errorFromResponse builds an *APIError from a non-2xx response and runs
// the error handler hook.
func (c *Client) errorFromResponse(resp *http.Response, url, requestID string) error {
	text, _ := io.ReadAll(resp.Body)

	traceID := resp.Header.Get("X-Sl-Trace-Id")
	if serverID := resp.Header.Get("X-Sl-Request-Id"); serverID != "" {
		requestID = serverID
	}

	apiErr := &APIError{
		StatusCode:   resp.StatusCode,
		URL:          url,
		ResponseText: string(text),
		TraceID:      traceID,
		RequestID:    requestID,
		Message: fmt.Sprintf(
			"status %d from StoreLink on %s. Trace ID %s. Request ID %s. Response %s",
			resp.StatusCode, url, traceID, requestID, string(text),
		),
	}

	if c.onAPIError != nil {
		c.onAPIError(apiErr)
	}

	return apiErr
}
