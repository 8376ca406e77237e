// Package config loads, normalizes, and validates recipectl configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the RECIPECTL_CSRF_TOKEN
// environment fallback. The Config type centralizes every knob the CLI and
// client need: the service base URL, CSRF token, request timeout,
// notification dismissal delay, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized URLs, canonical log formats, and clear validation errors.
package config
