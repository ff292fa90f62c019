package logging

import (
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the global structured logger. Commands log through the
	// package-level helpers; tests may swap it via Setup.
	Logger *slog.Logger

	// Verbose mirrors the --verbose flag after Setup.
	Verbose bool
)

func init() {
	Logger = slog.New(newHandler(os.Stderr, false, slog.LevelInfo))
}

// Setup configures the global logger from the root command's flags. A nil
// writer falls back to stderr.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}

	Logger = slog.New(newHandler(w, jsonOutput, level))
}

func newHandler(w io.Writer, jsonOutput bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Debug logs a debug message. Visible only with --verbose.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger carrying additional attributes, for components
// that log repeatedly about the same run.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
