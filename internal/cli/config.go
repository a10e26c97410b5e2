package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	storelink "github.com/storelink/client-go"
)

// Config is the CLI configuration, loaded from a YAML file and overlaid
// with command-line flags.
type Config struct {
	BaseURL              string `yaml:"base_url"`
	AuthToken            string `yaml:"auth_token"`
	MaxRequestsPerSecond int    `yaml:"max_requests_per_second"`
	MaxRetries           int    `yaml:"max_retries"`
	RetryDelaySeconds    int    `yaml:"retry_delay_seconds"`
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
}

// RetryDelay returns the configured delay between retry attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// Timeout returns the configured per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads a YAML config from path. An empty path yields the
// defaults; a missing file at an explicit path is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.MaxRequestsPerSecond == 0 {
		cfg.MaxRequestsPerSecond = storelink.DefaultMaxRequestsPerSecond
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = storelink.DefaultMaxRetries
	}
	if cfg.RetryDelaySeconds == 0 {
		cfg.RetryDelaySeconds = int(storelink.DefaultRetryDelay / time.Second)
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 30
	}
}
