package errors

import (
	"path/filepath"
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommandResolutionHints maps command names to installation instructions.
// Used by doctor and when a manager's command is not found.
var CommandResolutionHints = map[string]string{
	"brew":    "Install Homebrew: https://brew.sh/",
	"npm":     "Install Node.js: https://nodejs.org/",
	"node":    "Install Node.js: https://nodejs.org/",
	"pip":     "Install Python: https://python.org/downloads/",
	"pip3":    "Install Python: https://python.org/downloads/",
	"python":  "Install Python: https://python.org/downloads/",
	"python3": "Install Python: https://python.org/downloads/",
}

// CommonErrorHints maps error patterns to actionable hints.
// The first matching pattern wins.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "context deadline exceeded",
		Hint:       "Package manager command took too long",
		Resolution: "Increase timeout_seconds for this manager in your config (0 disables the timeout)",
	},
	{
		Pattern:    "not valid UTF-8",
		Hint:       "Package manager printed non-text output",
		Resolution: "Check the manager's locale settings (LANG, LC_ALL) and run the command manually",
	},
	{
		Pattern:    "failed to parse",
		Hint:       "Unexpected package manager output",
		Resolution: "Run the command manually and check that your package manager version supports JSON output",
	},
	{
		Pattern:    "failed to load config",
		Hint:       "Configuration file is invalid or not found",
		Resolution: "Run 'bagpack config --show-effective' to validate config",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "ENOTFOUND",
		Hint:       "DNS resolution failed",
		Resolution: "Check network connectivity and DNS configuration",
	},
	{
		Pattern:    "ECONNREFUSED",
		Hint:       "Connection refused by server",
		Resolution: "Check if the registry/server is accessible and not blocked",
	},
	{
		Pattern:    "network",
		Hint:       "Network connectivity issue",
		Resolution: "Check internet connection and proxy settings",
	},
}

// GetHint returns an actionable hint for the given error.
//
// It searches the error message for known patterns in CommonErrorHints
// and returns a formatted hint if one matches.
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}
	return hintForMessage(err.Error())
}

func hintForMessage(msg string) string {
	lower := strings.ToLower(msg)
	for _, hint := range CommonErrorHints {
		if strings.Contains(lower, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}
	return ""
}

// GetHintForCommand returns the installation hint for a command.
//
// Paths are reduced to their base name, so "/usr/local/bin/pip3" resolves
// the same hint as "pip3".
//
// Parameters:
//   - cmd: The command name (e.g., "brew", "npm", "pip3")
//
// Returns:
//   - string: Installation hint, or empty string if unknown command
func GetHintForCommand(cmd string) string {
	return CommandResolutionHints[filepath.Base(cmd)]
}

// HintFor returns a resolution hint for a collection warning.
//
// A "command not found" message resolves to the manager's installation hint;
// anything else is matched against CommonErrorHints.
//
// Parameters:
//   - manager: Manager the warning belongs to, e.g. "npm"
//   - message: The warning message
//
// Returns:
//   - string: The hint, or empty string if none applies
//
// Example:
//
//	HintFor("npm", "npm failed to run: npm ls -g --depth=0 --json: command not found")
//	// "Install Node.js: https://nodejs.org/"
func HintFor(manager, message string) string {
	if strings.Contains(message, "command not found") {
		if hint := GetHintForCommand(manager); hint != "" {
			return hint
		}
	}
	return hintForMessage(message)
}

// EnhanceErrorWithHint adds an actionable hint to an error message if a matching pattern is found.
//
// Returns:
//   - string: Error message with hint appended if found, otherwise just the error message
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()
	if hint := GetHint(err); hint != "" {
		return errStr + "\n  \U0001F4A1 " + hint
	}
	return errStr
}
