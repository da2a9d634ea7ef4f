// Package preflight checks that the configured package-manager commands can
// be found before a collection runs.
package preflight

import (
	"fmt"
	"io"

	"github.com/ajxudir/bagpack/pkg/cmdexec"
	"github.com/ajxudir/bagpack/pkg/config"
	"github.com/ajxudir/bagpack/pkg/constants"
	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/verbose"
)

// available resolves a program on PATH; replaced in tests.
var available = cmdexec.Available

// Check is the outcome for one manager.
//
// Fields:
//   - Manager: The manager checked
//   - Command: The configured program
//   - Enabled: false when the manager is disabled or not configured; nothing is resolved then
//   - Path: Resolved executable path, empty when not found
//   - Hint: Installation hint when the command is missing
type Check struct {
	Manager inventory.PackageManager
	Command string
	Enabled bool
	Path    string
	Hint    string
}

// Found reports whether an enabled manager's command resolved.
func (c Check) Found() bool {
	return c.Path != ""
}

// Missing reports whether an enabled manager's command did not resolve.
func (c Check) Missing() bool {
	return c.Enabled && !c.Found()
}

// Report holds one Check per known manager, in collection order.
type Report struct {
	Checks []Check
}

// HasErrors returns true if any enabled manager's command is missing.
func (r *Report) HasErrors() bool {
	for _, c := range r.Checks {
		if c.Missing() {
			return true
		}
	}
	return false
}

// Result converts missing commands into preflight validation errors and
// disabled managers into warnings.
func (r *Report) Result() *errors.ValidationResult {
	result := errors.NewValidationResult()
	for _, c := range r.Checks {
		switch {
		case !c.Enabled:
			result.AddWarning(fmt.Sprintf("%s is disabled", c.Manager))
		case c.Missing():
			result.AddError(errors.NewPreflightValidationError(c.Command, c.Hint))
		}
	}
	return result
}

// Print writes one line per manager.
//
// Example output:
//
//	🟢 brew  /opt/homebrew/bin/brew
//	❌ npm   npm not found
//	   💡 Install Node.js: https://nodejs.org/
//	⚪ pip   disabled
func (r *Report) Print(w io.Writer) {
	width := 0
	for _, c := range r.Checks {
		width = max(width, len(c.Manager))
	}
	for _, c := range r.Checks {
		name := fmt.Sprintf("%-*s", width, c.Manager)
		switch {
		case !c.Enabled:
			_, _ = fmt.Fprintf(w, "%s %s  disabled\n", constants.IconNotConfigured, name)
		case c.Found():
			_, _ = fmt.Fprintf(w, "%s %s  %s\n", constants.IconSuccess, name, c.Path)
		default:
			_, _ = fmt.Fprintf(w, "%s %s  %s not found\n", constants.IconError, name, c.Command)
			if c.Hint != "" {
				_, _ = fmt.Fprintf(w, "   %s %s\n", constants.IconLightbulb, c.Hint)
			}
		}
	}
}

// ValidateManagers resolves the command of every enabled manager in cfg.
//
// It performs the following operations:
//   - Visits brew, npm, and pip in order
//   - Skips managers that are disabled or absent from cfg
//   - Resolves the configured command on PATH
//   - Attaches an installation hint to each missing command
//
// Parameters:
//   - cfg: Configuration naming the commands
//
// Returns:
//   - *Report: One check per known manager; never nil
func ValidateManagers(cfg *config.Config) *Report {
	report := &Report{}
	for _, m := range inventory.AllManagers() {
		check := Check{Manager: m, Command: string(m)}
		mc, ok := cfg.Manager(m)
		if ok && mc.Command != "" {
			check.Command = mc.Command
		}
		if !ok || !mc.IsEnabled() {
			verbose.Infof("Preflight: %s is disabled", m)
			report.Checks = append(report.Checks, check)
			continue
		}

		check.Enabled = true
		if path, found := available(check.Command); found {
			check.Path = path
			verbose.Infof("Preflight: %s resolved to %s", check.Command, path)
		} else {
			check.Hint = errors.GetHintForCommand(check.Command)
			if check.Hint == "" {
				check.Hint = errors.GetHintForCommand(string(m))
			}
			verbose.Infof("Preflight: %s not found on PATH", check.Command)
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}
