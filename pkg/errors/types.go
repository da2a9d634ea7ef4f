package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
const (
	// ExitSuccess indicates all operations completed successfully.
	ExitSuccess = 0

	// ExitPartialFailure indicates some managers failed but others were collected.
	ExitPartialFailure = 1

	// ExitFailure indicates every manager failed or a critical error occurred.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The command could not proceed due to invalid config or missing requirements.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Fields:
//   - Code: Exit code (ExitSuccess, ExitPartialFailure, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise the underlying error's
// message, or a default message with the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is or wraps an ExitError, returns its code.
// Otherwise returns ExitFailure.
//
// Example:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// PartialSuccessError indicates that some managers were collected while others failed.
//
// Fields:
//   - Succeeded: Count of managers collected successfully
//   - Failed: Count of managers that failed
//   - Errors: One error per failed manager
type PartialSuccessError struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// Error implements the error interface.
//
// Returns a summary message in the format "X succeeded, Y failed".
func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%d succeeded, %d failed", e.Succeeded, e.Failed)
}

// NewPartialSuccessError creates a PartialSuccessError with the given counts and errors.
func NewPartialSuccessError(succeeded, failed int, errs []error) *PartialSuccessError {
	return &PartialSuccessError{
		Succeeded: succeeded,
		Failed:    failed,
		Errors:    errs,
	}
}

// IsPartialSuccess checks if err is a PartialSuccessError and returns it.
func IsPartialSuccess(err error) (*PartialSuccessError, bool) {
	var pse *PartialSuccessError
	if errors.As(err, &pse) {
		return pse, true
	}
	return nil, false
}

// CommandError reports that a package manager's command failed to run,
// exited with an unaccepted code, or produced undecodable output.
//
// Fields:
//   - Manager: Manager name, e.g. "npm"
//   - Err: The process-level cause (see pkg/cmdexec)
//
// Example:
//
//	npm failed to run: npm ls -g --depth=0 --json: command not found
type CommandError struct {
	Manager string
	Err     error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed to run: %v", e.Manager, e.Err)
}

// Unwrap returns the process-level cause.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps a process-level failure for manager.
func NewCommandError(manager string, err error) *CommandError {
	return &CommandError{Manager: manager, Err: err}
}

// ParseError reports that a command's output was not the expected document.
// Only structurally invalid output produces a ParseError; individual bad
// entries are skipped by the probes.
//
// Fields:
//   - Manager: Manager name, e.g. "pip"
//   - Label: The command line whose output failed to parse
//   - Err: The decoding cause
type ParseError struct {
	Manager string
	Label   string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s output: %v", e.Label, e.Err)
}

// Unwrap returns the decoding cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError for the output of label.
func NewParseError(manager, label string, err error) *ParseError {
	return &ParseError{Manager: manager, Label: label, Err: err}
}

// IsCommandError checks if err is a CommandError and returns it.
func IsCommandError(err error) (*CommandError, bool) {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsParseError checks if err is a ParseError and returns it.
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
