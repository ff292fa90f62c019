package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output, separate from the structured logs: plain formatted
// lines with a status indicator, the way command results are reported.

// Status indicators prepended to user output.
const (
	iconInfo    = "ℹ"
	iconSuccess = "✓"
	iconWarning = "⚠"
	iconError   = "✗"
)

func userf(w io.Writer, icon, format string, args ...interface{}) {
	fmt.Fprintf(w, icon+" "+format+"\n", args...)
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	userf(os.Stdout, iconInfo, format, args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	userf(os.Stdout, iconSuccess, format, args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	userf(os.Stderr, iconWarning, format, args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	userf(os.Stderr, iconError, format, args...)
}
