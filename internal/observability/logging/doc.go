// Package logging provides structured logging utilities for the checker.
//
// This package wraps the standard library's log/slog package with helper
// functions for the logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Context-aware logger propagation
//   - Configurable log levels via LOG_LEVEL
//
// Example usage:
//
//	import "appwatch/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("check started", slog.Int("apps", 3))
//	}
package logging
