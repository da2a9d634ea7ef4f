// Package verbose provides opt-in debug logging for collection passes.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to true
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages and returns a
// function restoring the previous writer.
//
// Parameters:
//   - w: The io.Writer to use for output; nil leaves the writer unchanged
//
// Returns:
//   - func(): Restores the writer that was active before the call
func SetWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()
	previous := writer
	if w != nil {
		writer = w
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		writer = previous
	}
}

// emit writes one [DEBUG] line plus optional indented detail lines.
// Probes may log concurrently in parallel mode, so the whole block is written
// under the lock.
func emit(head string, details ...string) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	var sb strings.Builder
	sb.WriteString("[DEBUG] ")
	sb.WriteString(head)
	sb.WriteByte('\n')
	for _, d := range details {
		sb.WriteString("        ")
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
	_, _ = io.WriteString(writer, sb.String())
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if IsEnabled() {
		emit(fmt.Sprintf(format, args...))
	}
}

// Info prints an informational verbose message if enabled.
func Info(msg string) {
	emit(msg)
}

// Infof prints a formatted informational verbose message if enabled.
func Infof(format string, args ...any) {
	if IsEnabled() {
		emit(fmt.Sprintf(format, args...))
	}
}

// CommandExec logs that a command is about to run.
//
// Parameters:
//   - label: The command line being executed
func CommandExec(label string) {
	emit("Executing: " + label)
}

// CommandResult logs the outcome of a command if enabled.
//
// It performs the following operations:
//   - Prints succeeded/failed with the exit code
//   - Truncates long command labels to 60 characters
//   - Previews up to 5 output lines, or the first 3 plus a count when longer
//
// Parameters:
//   - label: The command line that was executed
//   - exitCode: The exit code returned by the command
//   - output: Captured stdout
func CommandResult(label string, exitCode int, output string) {
	if !IsEnabled() {
		return
	}
	var head string
	if exitCode == 0 {
		head = "Command succeeded: " + truncate(label, 60)
	} else {
		head = fmt.Sprintf("Command exited %d: %s", exitCode, truncate(label, 60))
	}

	var details []string
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		lines := strings.Split(trimmed, "\n")
		if len(lines) > 5 {
			for _, line := range lines[:3] {
				details = append(details, "| "+truncate(line, 100))
			}
			details = append(details, fmt.Sprintf("| ... (%d more lines)", len(lines)-3))
		} else {
			for _, line := range lines {
				details = append(details, "| "+truncate(line, 100))
			}
		}
	}
	emit(head, details...)
}

// ConfigLoaded logs which config file was loaded.
//
// Parameters:
//   - path: Config file path, or "" for the built-in defaults
func ConfigLoaded(path string) {
	if path == "" {
		emit("Using built-in default configuration")
		return
	}
	emit("Config loaded: " + path)
}

// EntrySkipped logs an output entry a probe ignored.
//
// Parameters:
//   - manager: Manager whose output contained the entry
//   - entry: Entry name, or a short excerpt when it has none
//   - reason: Why it was skipped
func EntrySkipped(manager, entry, reason string) {
	if IsEnabled() {
		emit(fmt.Sprintf("%s: skipped '%s': %s", manager, entry, reason))
	}
}

// ProbeFinished logs the outcome of one probe.
//
// Parameters:
//   - manager: Manager the probe collects from
//   - count: Records produced (ignored when err is non-nil)
//   - elapsed: Wall-clock time the probe took
//   - err: Probe failure, or nil
func ProbeFinished(manager string, count int, elapsed time.Duration, err error) {
	if !IsEnabled() {
		return
	}
	elapsed = elapsed.Round(time.Millisecond)
	if err != nil {
		emit(fmt.Sprintf("Probe %s failed after %s", manager, elapsed), err.Error())
		return
	}
	emit(fmt.Sprintf("Probe %s collected %d package(s) in %s", manager, count, elapsed))
}

// truncate shortens a string to the specified maximum length.
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
