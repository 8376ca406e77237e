package config

const (
	defaultBaseURL        = "http://localhost:8000"
	defaultRequestTimeout = 30
	defaultDismissAfter   = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	// csrfTokenEnvVar overrides server.csrf_token when set.
	csrfTokenEnvVar = "RECIPECTL_CSRF_TOKEN"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Notifications: Notifications{
			DismissAfter: defaultDismissAfter,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
