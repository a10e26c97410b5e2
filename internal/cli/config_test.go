package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.MaxRequestsPerSecond != 5 {
		t.Errorf("MaxRequestsPerSecond = %d, want 5", cfg.MaxRequestsPerSecond)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay() != time.Second {
		t.Errorf("RetryDelay() = %v, want 1s", cfg.RetryDelay())
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Timeout())
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storelink.yaml")
	contents := `
base_url: https://sandbox.example.com
auth_token: tok-1
max_requests_per_second: 2
max_retries: 1
retry_delay_seconds: 5
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BaseURL != "https://sandbox.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.AuthToken != "tok-1" {
		t.Errorf("AuthToken = %q, want tok-1", cfg.AuthToken)
	}
	if cfg.MaxRequestsPerSecond != 2 || cfg.MaxRetries != 1 {
		t.Errorf("limits = %d/%d, want 2/1", cfg.MaxRequestsPerSecond, cfg.MaxRetries)
	}
	if cfg.RetryDelay() != 5*time.Second {
		t.Errorf("RetryDelay() = %v, want 5s", cfg.RetryDelay())
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30", cfg.TimeoutSeconds)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() error = nil, want read error for explicit path")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("auth_token: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil, want parse error")
	}
}
