// Package testutil provides scripted package managers and configuration
// builders for bagpack tests.
package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ajxudir/bagpack/pkg/cmdexec"
)

// FakeResponse is the scripted outcome of one command.
//
// Fields:
//   - Stdout, Stderr: Output returned to the caller
//   - ExitCode: Exit status; non-zero codes not allowed by the command become *cmdexec.ExitCodeError
//   - Err: Returned as-is instead of a result when set
//   - Delay: Time to block before answering; the context can cut it short
type FakeResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
	Delay    time.Duration
}

// FakeRunner is a scripted replacement for cmdexec.Run.
//
// Responses are keyed by the command label ("brew list --versions").
// Commands without a scripted response fail as if the program were not
// installed. FakeRunner is safe for concurrent use.
//
// Example:
//
//	runner := testutil.NewFakeRunner().
//	    OnStdout("pip3 list --format=json", `[{"name":"requests","version":"2.32.3"}]`)
//	probe := probes.NewPipProbe("pip3", nil, runner.Run)
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]FakeResponse
	calls     []cmdexec.Command
}

// NewFakeRunner creates a FakeRunner with no scripted responses.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]FakeResponse)}
}

// On scripts the response for label.
//
// Returns:
//   - *FakeRunner: Self for method chaining
func (f *FakeRunner) On(label string, resp FakeResponse) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[label] = resp
	return f
}

// OnStdout scripts a successful response printing stdout.
func (f *FakeRunner) OnStdout(label, stdout string) *FakeRunner {
	return f.On(label, FakeResponse{Stdout: stdout})
}

// OnError scripts a failure returning err.
func (f *FakeRunner) OnError(label string, err error) *FakeRunner {
	return f.On(label, FakeResponse{Err: err})
}

// Run implements cmdexec.RunFunc.
func (f *FakeRunner) Run(ctx context.Context, cmd cmdexec.Command) (*cmdexec.Result, error) {
	label := cmd.Label()

	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	resp, ok := f.responses[label]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, &cmdexec.SpawnError{Label: label, Err: exec.ErrNotFound}
	}

	if resp.Delay > 0 {
		timer := time.NewTimer(resp.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", label, ctx.Err())
		case <-timer.C:
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.ExitCode != 0 && !slices.Contains(cmd.AllowedExitCodes, resp.ExitCode) {
		return nil, &cmdexec.ExitCodeError{Label: label, Code: resp.ExitCode, Stderr: strings.TrimSpace(resp.Stderr)}
	}

	return &cmdexec.Result{Stdout: resp.Stdout, Stderr: resp.Stderr, ExitCode: resp.ExitCode}, nil
}

// Calls returns the labels of every command run, in order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	labels := make([]string, len(f.calls))
	for i, c := range f.calls {
		labels[i] = c.Label()
	}
	return labels
}

// Commands returns every command run, in order.
func (f *FakeRunner) Commands() []cmdexec.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Called reports whether a command with label was run.
func (f *FakeRunner) Called(label string) bool {
	return slices.Contains(f.Calls(), label)
}
