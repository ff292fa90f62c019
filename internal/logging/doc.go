// Package logging provides logging utilities for trainctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating run workspace", "run", name, "config", path)
//	logging.Warn("statistics file is stale", "run", name, "age", age)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Loading config %s...", path)
//	logging.UserSuccess("Run %s created", name)
//	logging.UserWarning("epochs (%d) is not cycle_length*ensemble_size", epochs)
//	logging.UserError("Failed to load config: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
