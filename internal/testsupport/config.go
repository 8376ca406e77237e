package testsupport

import (
	"testing"

	"recipectl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config suitable for tests: short timeouts, a local
// placeholder server, and a fixed CSRF token. Options apply on top.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.BaseURL = "http://127.0.0.1:0"
	cfg.Server.CSRFToken = "test-token"
	cfg.Server.RequestTimeout = 5
	cfg.Notifications.DismissAfter = 1

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithBaseURL points the test config at a live test server.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Server.BaseURL = url
	}
}

// WithCSRFToken overrides the CSRF token on the test config.
func WithCSRFToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Server.CSRFToken = token
	}
}
