package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationCategory identifies the source of a validation error.
type ValidationCategory string

const (
	// ValidationCategoryConfig indicates a configuration file validation error.
	ValidationCategoryConfig ValidationCategory = "config"

	// ValidationCategoryPreflight indicates a preflight check failure (missing command).
	ValidationCategoryPreflight ValidationCategory = "preflight"
)

// ValidationError represents a configuration or preflight validation failure.
//
// Fields:
//   - Category: Source of validation ("config" or "preflight")
//   - Field: Dotted path of the invalid setting, e.g. "managers.pip.command"
//   - Message: Description of what's wrong
//   - Expected: What the valid value should look like
//   - ValidKeys: List of valid options (for enum-like fields)
//   - Command: For preflight errors, the command that was not found
//   - Hint: Actionable hint for fixing the error
//
// Example:
//
//	return &ValidationError{
//	    Category:  ValidationCategoryConfig,
//	    Field:     "managers.cargo",
//	    Message:   "unknown package manager",
//	    ValidKeys: []string{"brew", "npm", "pip"},
//	}
type ValidationError struct {
	Category  ValidationCategory
	Field     string
	Message   string
	Expected  string
	ValidKeys []string
	Command   string
	Hint      string
}

// Error implements the error interface.
//
// Preflight errors name the missing command and its resolution; config
// errors name the field and the problem.
func (e *ValidationError) Error() string {
	var sb strings.Builder

	if e.Category == ValidationCategoryPreflight && e.Command != "" {
		sb.WriteString(fmt.Sprintf("command not found: %s", e.Command))
		if e.Hint != "" {
			sb.WriteString(fmt.Sprintf("\n  Resolution: %s", e.Hint))
		} else {
			sb.WriteString(fmt.Sprintf("\n  Resolution: Ensure '%s' is installed and available in your PATH.", e.Command))
		}
		return sb.String()
	}

	switch {
	case e.Field != "":
		sb.WriteString(fmt.Sprintf("%s: %s", e.Field, e.Message))
	case e.Message != "":
		sb.WriteString(e.Message)
	case e.Command != "":
		sb.WriteString(fmt.Sprintf("command not found: %s", e.Command))
	}

	return sb.String()
}

// VerboseError returns a detailed error message with expected values and hints.
func (e *ValidationError) VerboseError() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("\n    Expected: %s", e.Expected))
	}
	if len(e.ValidKeys) > 0 {
		sb.WriteString(fmt.Sprintf("\n    Valid keys: %s", strings.Join(e.ValidKeys, ", ")))
	}
	if e.Hint != "" && e.Category != ValidationCategoryPreflight {
		sb.WriteString(fmt.Sprintf("\n    Hint: %s", e.Hint))
	}

	return sb.String()
}

// IsValidationError checks if err is a ValidationError and returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NewConfigValidationError creates a ValidationError for configuration issues.
//
// Parameters:
//   - field: The field path that failed validation
//   - message: Description of the error
//
// Returns:
//   - *ValidationError: New validation error with config category
func NewConfigValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Category: ValidationCategoryConfig,
		Field:    field,
		Message:  message,
	}
}

// NewPreflightValidationError creates a ValidationError for a missing command.
//
// Parameters:
//   - command: The command that was not found
//   - hint: Resolution hint for installing the command
//
// Returns:
//   - *ValidationError: New validation error with preflight category
func NewPreflightValidationError(command, hint string) *ValidationError {
	return &ValidationError{
		Category: ValidationCategoryPreflight,
		Command:  command,
		Hint:     hint,
	}
}
