package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeServer()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.BaseURL = strings.TrimRight(strings.TrimSpace(c.Server.BaseURL), "/")
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaultBaseURL
	}

	if env := strings.TrimSpace(os.Getenv(csrfTokenEnvVar)); env != "" {
		c.Server.CSRFToken = env
	} else {
		c.Server.CSRFToken = strings.TrimSpace(c.Server.CSRFToken)
	}

	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeNotifications() {
	if c.Notifications.DismissAfter <= 0 {
		c.Notifications.DismissAfter = defaultDismissAfter
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
