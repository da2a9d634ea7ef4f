package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajxudir/bagpack/pkg/cmdexec"
	"github.com/ajxudir/bagpack/pkg/config"
	"github.com/ajxudir/bagpack/pkg/testutil"
	"github.com/ajxudir/bagpack/pkg/verbose"
)

// cliRun holds the isolated environment of one CLI invocation.
type cliRun struct {
	dir    string
	runner *testutil.FakeRunner
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newCLI isolates the CLI for one test: an empty working directory, no user
// config, scripted package managers, and buffered output.
func newCLI(t *testing.T, runner *testutil.FakeRunner) *cliRun {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	oldRun := cmdexec.Run
	oldGetwd := getwdFunc
	oldVersion := Version
	cmdexec.Run = runner.Run
	getwdFunc = func() (string, error) { return dir, nil }
	Version = "1.0.0"
	restoreVerbose := verbose.SetWriter(nil)

	c := &cliRun{dir: dir, runner: runner, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	rootCmd.SetOut(c.stdout)
	rootCmd.SetErr(c.stderr)
	resetFlags()

	t.Cleanup(func() {
		cmdexec.Run = oldRun
		getwdFunc = oldGetwd
		Version = oldVersion
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
		verbose.Disable()
		restoreVerbose()
	})
	return c
}

// execute runs the root command with args.
func (c *cliRun) execute(args ...string) error {
	c.stdout.Reset()
	c.stderr.Reset()
	resetFlags()
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return ExecuteTest()
}

// writeConfig writes .bagpack.yml into the working directory.
func (c *cliRun) writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(c.dir, config.LocalConfigName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// resetFlags restores every flag variable to its default; cobra keeps
// values between executions of the same command tree.
func resetFlags() {
	verboseFlag = false
	versionFlag = false
	skipBuildChecksFlag = false

	configShowDefaultsFlag = false
	configShowEffectiveFlag = false
	configInitFlag = false
	configValidateFlag = false
	configPathFlag = ""

	inventoryConfigFlag = ""
	inventoryOutputFlag = ""
	inventoryManagerFlag = nil
	inventoryParallelFlag = false
	inventoryStrictFlag = false

	outdatedConfigFlag = ""
	outdatedOutputFlag = ""
	outdatedManagerFlag = nil
	outdatedParallelFlag = false
	outdatedStrictFlag = false

	doctorConfigFlag = ""
}

// processStreams runs fn with the root command writing to the process's own
// stdout and stderr, both redirected into pipes, and returns what each received.
// The buffered writers are reinstated afterwards.
func (c *cliRun) processStreams(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	rOut, wOut, err := os.Pipe()
	require.NoError(t, err)
	rErr, wErr, err := os.Pipe()
	require.NoError(t, err)

	drain := func(r *os.File) <-chan string {
		ch := make(chan string, 1)
		go func() {
			var buf bytes.Buffer
			_, _ = io.Copy(&buf, r)
			_ = r.Close()
			ch <- buf.String()
		}()
		return ch
	}
	outCh, errCh := drain(rOut), drain(rErr)

	oldStdout, oldStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = wOut, wErr
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	defer func() {
		os.Stdout, os.Stderr = oldStdout, oldStderr
		rootCmd.SetOut(c.stdout)
		rootCmd.SetErr(c.stderr)
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	return <-outCh, <-errCh
}
