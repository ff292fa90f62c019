package errors

import (
	"errors"
	"fmt"
)

// Exit codes for trainctl
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitParseError      = 2
	ExitValidationError = 3
	ExitRunNotFound     = 4
	ExitTrainerFailed   = 5
	ExitWorkspaceError  = 6
	ExitResultsError    = 7
)

// TrainError is the base error type for trainctl
type TrainError struct {
	Code    int
	Message string
	Cause   error
}

func (e *TrainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TrainError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *TrainError) ExitCode() int {
	return e.Code
}

// New creates a new TrainError
func New(code int, message string) *TrainError {
	return &TrainError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a TrainError
func Wrap(code int, message string, cause error) *TrainError {
	return &TrainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ParseError reports a configuration document that is not well-formed
// structured text (broken JSON or TOML syntax).
type ParseError struct {
	File  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ParseError) ExitCode() int {
	return ExitParseError
}

// NewParseError creates a ParseError for the given file
func NewParseError(file string, cause error) *ParseError {
	return &ParseError{File: file, Cause: cause}
}

// ValidationError reports a well-formed configuration document that violates
// the schema: a missing required field, a value out of range, or an unknown
// enum or reference identifier. Field is the dotted path of the offending
// field (e.g. "training.epochs").
type ValidationError struct {
	File    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("invalid config %s: %s: %s", e.File, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExitCode returns the exit code for this error
func (e *ValidationError) ExitCode() int {
	return ExitValidationError
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Validationf creates a ValidationError with a formatted message
func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Common error constructors

// RunNotFound returns an error for a missing training run
func RunNotFound(name string) *TrainError {
	return New(ExitRunNotFound, fmt.Sprintf("run not found: %s", name))
}

// TrainerFailed returns an error for a failed trainer process
func TrainerFailed(cause error) *TrainError {
	return Wrap(ExitTrainerFailed, "trainer process failed", cause)
}

// WorkspaceError returns an error for workspace operations
func WorkspaceError(op string, cause error) *TrainError {
	return Wrap(ExitWorkspaceError, fmt.Sprintf("workspace %s failed", op), cause)
}

// ResultsError returns an error for result-file operations
func ResultsError(message string, cause error) *TrainError {
	return Wrap(ExitResultsError, message, cause)
}

// UsageError returns an error for invalid command usage
func UsageError(message string) *TrainError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitGeneralError
}

// IsParseError reports whether err is (or wraps) a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
