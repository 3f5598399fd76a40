// Package logging provides structured logging utilities for the investigator.
//
// # Overview
//
// This package wraps the standard library slog package with defaults shared by
// every component: JSON records on stderr, module and version attributes on
// every record, and source locations for debug output.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: Progress lines (device count, mount actions, upload decisions)
//   - WARN/WARNING: Recoverable problems (failed mounts, skipped categories)
//   - ERROR: Failures that abort a phase
//
// Informational progress is gated by verbosity. Without --verbose the CLI
// runs at WARN so that warnings and errors stay visible while progress lines
// are suppressed. Verbosity never changes behavior.
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("investigator", version, "info")
//	    slog.Info("mounting device", "device", "sdc1", "path", "/mnt/sdc1")
//	}
//
// # Environment Configuration
//
// When no level is given explicitly, LOG_LEVEL controls verbosity:
//
//	LOG_LEVEL=debug investigator collect ...
package logging
