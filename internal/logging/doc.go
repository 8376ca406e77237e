// Package logging assembles the structured slog loggers used across
// recipectl.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes helpers so dispatch and action code tag log lines with operation
// names, correlation IDs, and recipe identifiers in one consistent shape.
// A no-op logger is available for tests and wiring code that cannot fail.
package logging
