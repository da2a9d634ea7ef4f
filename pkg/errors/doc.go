// Package errors provides the error types and error display used by bagpack.
//
// Collection errors:
//   - CommandError: a package manager could not be run or exited badly
//   - ParseError: a package manager's output could not be understood
//
// Command-line errors:
//   - ExitError: command exit with a specific exit code
//   - PartialSuccessError: some managers were collected, some failed
//   - ValidationError: configuration or preflight validation failures
//
// Error Display:
//
// Errors and collection warnings are printed with actionable hints:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//	hint := errors.HintFor("npm", warning.Message)
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): All operations completed successfully
//   - ExitPartialFailure (1): Some managers failed
//   - ExitFailure (2): All managers failed or critical error
//   - ExitConfigError (3): Configuration or validation error
package errors
