// Package api provides the HTTP client used to talk to the StoreLink B2B
// API. It handles authentication, request/response serialization, per-key
// rate limiting, and automatic retry of transient failures.
//
// # Request Model
//
// Every StoreLink B2B endpoint is invoked with a JSON POST carrying a
// Bearer token; [Client.Do] performs one such call. [Client.DoMultipart]
// covers the handful of endpoints that accept multipart form uploads
// (product media).
//
// # Rate Limiting
//
// The platform enforces a per-endpoint requests-per-second budget for each
// auth token. When the client is constructed with a limiter, every attempt
// (including retries) passes through it before touching the network, keyed
// by (token, endpoint).
//
// # Retry Behavior
//
// Requests failing with a retryable HTTP status (429 Too Many Requests and
// 500 Internal Server Error by default) are re-attempted after a fixed
// delay, up to MaxRetries additional attempts. All other failures — other
// statuses, network errors, malformed response bodies — propagate
// immediately and unchanged. See [RetryConfig].
//
// # Error Handling
//
// Non-2xx responses surface as [*APIError] carrying the status code, the
// request URL, the raw response body, and the platform trace/request IDs
// when the server supplies them.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may
// call methods on a single Client simultaneously.
package api
