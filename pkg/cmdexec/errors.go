package cmdexec

import (
	"errors"
	"fmt"
	"os/exec"
)

// SpawnError indicates the program could not be started, most often because
// it is not installed or not on PATH.
//
// Fields:
//   - Label: Command line that was attempted
//   - Err: Underlying error from the operating system
type SpawnError struct {
	Label string
	Err   error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	if errors.Is(e.Err, exec.ErrNotFound) {
		return fmt.Sprintf("%s: command not found", e.Label)
	}
	return fmt.Sprintf("%s: could not start: %v", e.Label, e.Err)
}

// Unwrap returns the underlying error.
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the program was missing from PATH.
func (e *SpawnError) NotFound() bool {
	return errors.Is(e.Err, exec.ErrNotFound)
}

// ExitCodeError indicates the program exited with a code outside its allowed set.
//
// Fields:
//   - Label: Command line that was run
//   - Code: Exit code returned by the process
//   - Stderr: Captured standard error, trimmed
type ExitCodeError struct {
	Label  string
	Code   int
	Stderr string
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Label, e.Code)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Label, e.Code, e.Stderr)
}

// DecodeError indicates captured output was not valid UTF-8 text.
//
// Fields:
//   - Label: Command line that was run
//   - Stream: "stdout" or "stderr"
type DecodeError struct {
	Label  string
	Stream string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s is not valid UTF-8 text", e.Label, e.Stream)
}

// IsSpawnError checks if err is a SpawnError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *SpawnError: The SpawnError if err is one, nil otherwise
//   - bool: true if err is a SpawnError
func IsSpawnError(err error) (*SpawnError, bool) {
	var se *SpawnError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsExitCodeError checks if err is an ExitCodeError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitCodeError: The ExitCodeError if err is one, nil otherwise
//   - bool: true if err is an ExitCodeError
func IsExitCodeError(err error) (*ExitCodeError, bool) {
	var ee *ExitCodeError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
