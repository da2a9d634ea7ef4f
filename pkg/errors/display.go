package errors

import (
	"fmt"
	"io"
	"strings"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Slice of errors to display
//   - verbose: If true, includes additional details for validation and partial errors
//
// Output format:
//
//	Error: <error message>
//	  💡 <actionable hint if available>
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

// printSingleError dispatches on the error type.
func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	if ve, ok := IsValidationError(err); ok {
		printValidationError(w, ve, verbose)
		return
	}

	if pse, ok := IsPartialSuccess(err); ok {
		printPartialSuccessError(w, pse, verbose)
		return
	}

	if ce, ok := IsCommandError(err); ok {
		_, _ = fmt.Fprintf(w, "Error: %s\n", ce.Error())
		if hint := HintFor(ce.Manager, ce.Error()); hint != "" {
			_, _ = fmt.Fprintf(w, "  \U0001F4A1 %s\n", hint)
		}
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}

func printValidationError(w io.Writer, err *ValidationError, verbose bool) {
	if verbose {
		_, _ = fmt.Fprintf(w, "Validation Error: %s\n", err.VerboseError())
	} else {
		_, _ = fmt.Fprintf(w, "Validation Error: %s\n", err.Error())
	}
}

// printPartialSuccessError prints the succeeded/failed summary and, in
// verbose mode, each failure with its hint.
func printPartialSuccessError(w io.Writer, err *PartialSuccessError, verbose bool) {
	_, _ = fmt.Fprintf(w, "Partial Success: %s\n", err.Error())
	if verbose && len(err.Errors) > 0 {
		_, _ = fmt.Fprintf(w, "  Failed managers:\n")
		for _, e := range err.Errors {
			_, _ = fmt.Fprintf(w, "    - %s\n", EnhanceErrorWithHint(e))
		}
	}
}

// ValidationResult holds the results of validation operations.
//
// Fields:
//   - Errors: Slice of validation errors
//   - Warnings: Slice of warning messages
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []string
}

// NewValidationResult creates a new empty ValidationResult.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:   make([]*ValidationError, 0),
		Warnings: make([]string, 0),
	}
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AddError adds a validation error to the result.
func (r *ValidationResult) AddError(err *ValidationError) {
	r.Errors = append(r.Errors, err)
}

// AddWarning adds a warning message to the result.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// ErrorMessage returns a formatted error message for all validation errors.
//
// Returns:
//   - string: Formatted error messages, or empty string if no errors
func (r *ValidationResult) ErrorMessage() string {
	return r.format(false)
}

func (r *ValidationResult) format(verbose bool) string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Validation failed:\n")
	for _, err := range r.Errors {
		if verbose {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.VerboseError()))
		} else {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}
	return sb.String()
}

// Err returns the result as an error, or nil when there are no errors.
//
// A single validation error is returned as-is so callers can inspect it
// with IsValidationError; several are combined into one message.
func (r *ValidationResult) Err() error {
	switch len(r.Errors) {
	case 0:
		return nil
	case 1:
		return r.Errors[0]
	default:
		return &ValidationError{
			Category: ValidationCategoryConfig,
			Message:  strings.TrimSuffix(r.ErrorMessage(), "\n"),
		}
	}
}

// PrintTo writes validation results to the given writer.
//
// Parameters:
//   - w: Writer to output to
//   - verbose: If true, includes detailed error information
func (r *ValidationResult) PrintTo(w io.Writer, verbose bool) {
	for _, warning := range r.Warnings {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	if len(r.Errors) > 0 {
		_, _ = fmt.Fprint(w, r.format(verbose))
	}
}
