// Package errors provides typed errors with exit codes for trainctl.
//
// # Error Types
//
// TrainError is the base error type that wraps an error with an exit code:
//
//	type TrainError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// Configuration loading has its own taxonomy. ParseError means the document
// is not well-formed structured text; ValidationError means the document
// parsed but violates the schema (missing required field, value out of
// range, unknown enum or reference identifier). Both abort the load; no
// partial document is ever returned.
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess         = 0  // Success
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitParseError      = 2  // Config document is not well-formed
//	ExitValidationError = 3  // Config document violates the schema
//	ExitRunNotFound     = 4  // Training run does not exist
//	ExitTrainerFailed   = 5  // Trainer process failed
//	ExitWorkspaceError  = 6  // Workspace operation failed
//	ExitResultsError    = 7  // Result-file operation failed
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.NewParseError(path, err)
//	errors.Validationf("training.epochs", "must be positive, got %d", n)
//	errors.RunNotFound("gapnet-baseline")
//	errors.TrainerFailed(err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
