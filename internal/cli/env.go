package cli

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	storelink "github.com/storelink/client-go"
)

// ErrAuthTokenMissing is returned when no auth token is found in the
// flags, config file, or environment.
var ErrAuthTokenMissing = errors.New("auth token missing: set --token, auth_token in the config file, or STORELINK_AUTH_TOKEN")

// Env holds the injectable dependencies for CLI commands. Tests override
// individual fields; production code uses DefaultEnv.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// NewClient builds the API client a command talks through.
	NewClient func(authToken string, opts ...storelink.Option) (*storelink.Client, error)
}

// DefaultEnv returns an Env wired to the process environment.
func DefaultEnv() *Env {
	return &Env{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Getenv:    os.Getenv,
		NewClient: storelink.New,
	}
}

// client builds a configured API client from the resolved config.
func (e *Env) client(cfg *Config, logger *zap.Logger) (*storelink.Client, error) {
	token := cfg.AuthToken
	if token == "" {
		token = e.Getenv("STORELINK_AUTH_TOKEN")
	}
	if token == "" {
		return nil, ErrAuthTokenMissing
	}

	opts := []storelink.Option{
		storelink.WithLogger(logger),
		storelink.WithRateLimit(cfg.MaxRequestsPerSecond),
		storelink.WithRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, storelink.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout() > 0 {
		opts = append(opts, storelink.WithTimeout(cfg.Timeout()))
	}
	if cfg.RetryDelay() > 0 {
		opts = append(opts, storelink.WithRetryDelay(cfg.RetryDelay()))
	}

	return e.NewClient(token, opts...)
}
