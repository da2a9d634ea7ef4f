// Package cmdexec runs package-manager executables and classifies how they exit.
//
// Programs are started directly (never through a shell) with an explicit
// argument list. Stdout and stderr are captured as text; output that is not
// valid UTF-8 is reported as an error rather than silently repaired.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ajxudir/bagpack/pkg/verbose"
)

// Command describes a single external program invocation.
//
// Fields:
//   - Program: Executable name (resolved on PATH) or path
//   - Args: Ordered argument list
//   - Env: Extra environment variables layered over the current environment
//   - AllowedExitCodes: Non-zero exit codes that still count as success
type Command struct {
	Program          string
	Args             []string
	Env              map[string]string
	AllowedExitCodes []int
}

// Label returns the program and its arguments joined by spaces.
//
// Returns:
//   - string: Human-readable command line, e.g. "npm outdated -g --json"
func (c Command) Label() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// allows reports whether code counts as a successful exit.
func (c Command) allows(code int) bool {
	return code == 0 || slices.Contains(c.AllowedExitCodes, code)
}

// Result holds the captured output of a successful invocation.
//
// Fields:
//   - Stdout: Captured standard output
//   - Stderr: Captured standard error
//   - ExitCode: 0 or one of the command's allowed exit codes
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunFunc is the function signature for running a command.
//
// Parameters:
//   - ctx: Context bounding the invocation; cancellation kills the process
//   - cmd: The command to run
//
// Returns:
//   - *Result: Captured output when the exit code is accepted
//   - error: *SpawnError, *ExitCodeError, *DecodeError, or the context error
type RunFunc func(ctx context.Context, cmd Command) (*Result, error)

// Run is the default command runner.
//
// Probes receive a RunFunc explicitly; this variable is the production value
// they are wired with and can be swapped in tests of the CLI layer.
var Run RunFunc = run

// lookPath is the PATH resolver used to detect missing programs.
var lookPath = exec.LookPath

// run executes cmd and waits for it to finish.
//
// It performs the following operations:
//   - Step 1: Builds the environment from os.Environ plus cmd.Env
//   - Step 2: Starts the program in its own process group
//   - Step 3: Waits and classifies the exit status
//   - Step 4: Validates both streams as UTF-8
//
// Parameters:
//   - ctx: Context bounding the invocation
//   - cmd: The command to run
//
// Returns:
//   - *Result: Captured output on an accepted exit code
//   - error: Classified failure; nil on success
func run(ctx context.Context, cmd Command) (*Result, error) {
	label := cmd.Label()
	if strings.TrimSpace(cmd.Program) == "" {
		return nil, &SpawnError{Label: label, Err: fmt.Errorf("empty program name")}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verbose.CommandExec(label)

	proc := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	proc.Env = buildEnv(cmd.Env)
	setProcGroup(proc)
	proc.Cancel = func() error {
		return killProcGroup(proc)
	}

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	if err := proc.Start(); err != nil {
		return nil, &SpawnError{Label: label, Err: err}
	}

	exitCode := 0
	if err := proc.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", label, ctxErr)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &SpawnError{Label: label, Err: err}
		}
		exitCode = exitErr.ExitCode()
	}

	verbose.CommandResult(label, exitCode, stdout.String())

	if !utf8.Valid(stderr.Bytes()) {
		return nil, &DecodeError{Label: label, Stream: "stderr"}
	}
	if !cmd.allows(exitCode) {
		return nil, &ExitCodeError{Label: label, Code: exitCode, Stderr: strings.TrimSpace(stderr.String())}
	}
	if !utf8.Valid(stdout.Bytes()) {
		return nil, &DecodeError{Label: label, Stream: "stdout"}
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}, nil
}

// buildEnv layers extra variables over the current process environment.
//
// Values may reference other variables ($HOME, ${PATH}); they are expanded
// against the current environment.
//
// Parameters:
//   - extra: Variables to add or override; may be nil
//
// Returns:
//   - []string: KEY=VALUE pairs for exec.Cmd.Env
func buildEnv(extra map[string]string) []string {
	environ := os.Environ()
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		environ = append(environ, key+"="+os.ExpandEnv(extra[key]))
	}
	return environ
}

// Available reports whether program resolves to an executable.
//
// Parameters:
//   - program: Executable name or path
//
// Returns:
//   - string: The resolved path, empty when not found
//   - bool: true when the program was found
func Available(program string) (string, bool) {
	path, err := lookPath(program)
	if err != nil {
		return "", false
	}
	return path, true
}
