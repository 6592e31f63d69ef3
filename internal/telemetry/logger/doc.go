// Package logger provides structured logging for Quill.
//
// It wraps the standard library log/slog:
//
//   - logger.go: Logger interface, handler setup, dynamic level
//   - context.go: context propagation of the logger and the console session id
//   - redact.go: masking of values under sensitive keys
//
// CLI commands log in text format to stderr; json is available for
// machine consumption.
package logger
