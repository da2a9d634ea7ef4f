package cmd

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/testutil"
)

// TestInventoryTable tests the default table output.
//
// It verifies:
//   - Every scripted package is listed with its status
//   - The footer counts packages and outdated packages
//   - Nothing is written to stderr when every manager succeeds
func TestInventoryTable(t *testing.T) {
	cli := newCLI(t, testutil.ScriptedManagers())

	require.NoError(t, cli.execute("inventory"))

	out := cli.stdout.String()
	assert.Contains(t, out, "MANAGER")
	assert.Contains(t, out, "STATUS")
	for _, name := range []string{"wget", "jq", "typescript", "requests"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "🔵 patch")
	assert.Contains(t, out, "🟡 minor")
	assert.Contains(t, out, "Total packages: 4 (2 outdated)")
	assert.Contains(t, out, "Generated at: ")
	assert.Empty(t, cli.stderr.String())
}

// TestInventoryAliases tests that list and ls run the inventory command.
func TestInventoryAliases(t *testing.T) {
	cli := newCLI(t, testutil.ScriptedManagers())

	for _, alias := range []string{"list", "ls"} {
		require.NoError(t, cli.execute(alias))
		assert.Contains(t, cli.stdout.String(), "Total packages: 4 (2 outdated)", alias)
	}
}

// TestInventoryJSON tests that -o json writes the collection summary.
func TestInventoryJSON(t *testing.T) {
	cli := newCLI(t, testutil.ScriptedManagers())

	require.NoError(t, cli.execute("inventory", "-o", "json"))

	var summary inventory.CollectionSummary
	require.NoError(t, json.Unmarshal(cli.stdout.Bytes(), &summary))
	require.NotNil(t, summary.Snapshot.GeneratedAt)

	expected := testutil.SampleSummary(*summary.Snapshot.GeneratedAt)
	assert.Equal(t, expected, summary)
}

// TestInventoryStructuredFormats tests the CSV and XML outputs.
func TestInventoryStructuredFormats(t *testing.T) {
	cli := newCLI(t, testutil.ScriptedManagers())

	require.NoError(t, cli.execute("inventory", "--output", "csv"))
	assert.Contains(t, cli.stdout.String(), "MANAGER,NAME,CURRENT,LATEST,UPDATE,STATUS\n")
	assert.Contains(t, cli.stdout.String(), "brew,wget,1.24.5,1.24.6,patch,outdated\n")

	require.NoError(t, cli.execute("inventory", "--output", "xml"))
	assert.Contains(t, cli.stdout.String(), "<inventoryResult")
	assert.Contains(t, cli.stdout.String(), "typescript")
	assert.Empty(t, cli.stderr.String())
}

// TestInventoryCSVWarnings tests that CSV output reports failed managers on stderr.
//
// It verifies:
//   - The CSV holds the rows of the managers that succeeded
//   - The failed manager's warning and hint go to stderr
//   - JSON keeps the warning in the document and leaves stderr empty
func TestInventoryCSVWarnings(t *testing.T) {
	runner := testutil.NewFakeRunner().
		OnStdout("brew list --versions", testutil.BrewListOutput).
		OnStdout("brew outdated --json=v2", testutil.BrewOutdatedOutput).
		OnStdout("pip3 list --format=json", testutil.PipListOutput).
		OnStdout("pip3 list --outdated --format=json", testutil.PipOutdatedOutput)
	cli := newCLI(t, runner)

	require.NoError(t, cli.execute("inventory", "-o", "csv"))
	assert.Contains(t, cli.stdout.String(), "brew,wget,")
	assert.Contains(t, cli.stdout.String(), "pip,requests,")
	assert.NotContains(t, cli.stdout.String(), "npm")
	assert.Contains(t, cli.stderr.String(), "⚠️ npm: npm failed to run: npm ls -g --depth=0 --json: command not found")
	assert.Contains(t, cli.stderr.String(), "💡 Install Node.js: https://nodejs.org/")

	require.NoError(t, cli.execute("inventory", "-o", "json"))
	assert.Contains(t, cli.stdout.String(), `"manager":"npm"`)
	assert.Empty(t, cli.stderr.String())
}

// TestInventoryWarnings tests a manager failure without --strict.
//
// It verifies:
//   - The command still succeeds
//   - The remaining managers are listed
//   - The warning and its hint go to stderr
func TestInventoryWarnings(t *testing.T) {
	runner := testutil.NewFakeRunner().
		OnStdout("brew list --versions", testutil.BrewListOutput).
		OnStdout("brew outdated --json=v2", testutil.BrewOutdatedOutput).
		OnStdout("pip3 list --format=json", testutil.PipListOutput).
		OnStdout("pip3 list --outdated --format=json", testutil.PipOutdatedOutput)
	cli := newCLI(t, runner)

	require.NoError(t, cli.execute("inventory"))

	assert.Contains(t, cli.stdout.String(), "wget")
	assert.Contains(t, cli.stdout.String(), "requests")
	assert.NotContains(t, cli.stdout.String(), "typescript")
	assert.Contains(t, cli.stderr.String(), "⚠️ npm: npm failed to run: npm ls -g --depth=0 --json: command not found")
	assert.Contains(t, cli.stderr.String(), "💡 Install Node.js: https://nodejs.org/")
	assert.False(t, runner.Called("npm outdated -g --json"))
}

// TestInventoryStrict tests the exit errors of --strict.
//
// It verifies:
//   - Some managers failing is a partial success
//   - Every manager failing is ExitFailure
//   - No failures is success
func TestInventoryStrict(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		runner := testutil.ScriptedManagers().OnError("pip3 list --format=json", stderrors.New("boom"))
		cli := newCLI(t, runner)

		err := cli.execute("inventory", "--strict")
		pse, ok := errors.IsPartialSuccess(err)
		require.True(t, ok, "expected PartialSuccessError, got %v", err)
		assert.Equal(t, 2, pse.Succeeded)
		assert.Equal(t, 1, pse.Failed)
		assert.Contains(t, cli.stdout.String(), "wget")
	})

	t.Run("all failed", func(t *testing.T) {
		cli := newCLI(t, testutil.NewFakeRunner())

		err := cli.execute("inventory", "--strict")
		require.Error(t, err)
		assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "all 3 package manager(s) failed")
		assert.Contains(t, cli.stdout.String(), "No packages found.")
	})

	t.Run("success", func(t *testing.T) {
		cli := newCLI(t, testutil.ScriptedManagers())
		assert.NoError(t, cli.execute("inventory", "--strict"))
	})
}

// TestInventoryManagerFlag tests --manager.
//
// It verifies:
//   - Only the named managers run
//   - An unknown manager is a config error
func TestInventoryManagerFlag(t *testing.T) {
	runner := testutil.ScriptedManagers()
	cli := newCLI(t, runner)

	require.NoError(t, cli.execute("inventory", "-m", "pip", "-o", "json"))
	assert.Equal(t, []string{"pip3 list --format=json", "pip3 list --outdated --format=json"}, runner.Calls())
	assert.Contains(t, cli.stdout.String(), `"requests"`)
	assert.NotContains(t, cli.stdout.String(), `"wget"`)

	err := cli.execute("inventory", "--manager", "brew,cargo")
	require.Error(t, err)
	assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
	assert.Contains(t, err.Error(), "cargo")
}

// TestInventoryParallel tests that --parallel keeps the output order.
func TestInventoryParallel(t *testing.T) {
	cli := newCLI(t, testutil.ScriptedManagers())

	require.NoError(t, cli.execute("inventory", "--parallel", "-o", "json"))

	var summary inventory.CollectionSummary
	require.NoError(t, json.Unmarshal(cli.stdout.Bytes(), &summary))
	var names []string
	for _, rec := range summary.Snapshot.Packages {
		names = append(names, string(rec.Manager)+"/"+rec.Name)
	}
	assert.Equal(t, []string{"brew/wget", "brew/jq", "npm/typescript", "pip/requests"}, names)
}

// TestInventoryConfigErrors tests that configuration problems exit with ExitConfigError.
func TestInventoryConfigErrors(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		cli := newCLI(t, testutil.ScriptedManagers())
		err := cli.execute("inventory", "-o", "yaml")
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), `unsupported output format "yaml"`)
		assert.Empty(t, cli.runner.Calls())
	})

	t.Run("missing config file", func(t *testing.T) {
		cli := newCLI(t, testutil.ScriptedManagers())
		err := cli.execute("inventory", "-c", "does-not-exist.yml")
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
	})

	t.Run("unknown field", func(t *testing.T) {
		cli := newCLI(t, testutil.ScriptedManagers())
		cli.writeConfig(t, "timeout: 30\n")
		err := cli.execute("inventory")
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
	})
}

// TestInventoryLocalConfig tests that .bagpack.yml in the working directory applies.
func TestInventoryLocalConfig(t *testing.T) {
	runner := testutil.ScriptedManagers()
	cli := newCLI(t, runner)
	cli.writeConfig(t, "managers:\n  npm:\n    enabled: false\n")

	require.NoError(t, cli.execute("inventory"))
	assert.False(t, runner.Called("npm ls -g --depth=0 --json"))
	assert.Contains(t, cli.stdout.String(), "Total packages: 3 (1 outdated)")
}

// TestRunCollectionProgress tests the progress counter on a terminal.
func TestRunCollectionProgress(t *testing.T) {
	cli := newCLI(t, testutil.ScriptedManagers())

	oldTerminal := isTerminalFunc
	isTerminalFunc = func(w io.Writer) bool { return w == cli.stderr }
	defer func() { isTerminalFunc = oldTerminal }()

	require.NoError(t, cli.execute("inventory"))
	assert.Contains(t, cli.stderr.String(), "Collecting: 3/3 (100%)")
	assert.NotContains(t, cli.stdout.String(), "Collecting")

	require.NoError(t, cli.execute("inventory", "-o", "json"))
	assert.Empty(t, cli.stderr.String())
}

// TestStrictError tests the mapping of warnings to exit errors.
func TestStrictError(t *testing.T) {
	assert.NoError(t, strictError(3, nil))

	warn := []inventory.CollectionWarning{{Manager: inventory.ManagerNpm, Message: "npm failed to run: boom"}}
	err := strictError(2, warn)
	pse, ok := errors.IsPartialSuccess(err)
	require.True(t, ok)
	require.Len(t, pse.Errors, 1)
	assert.EqualError(t, pse.Errors[0], "npm failed to run: boom")

	assert.Equal(t, errors.ExitFailure, errors.GetExitCode(strictError(1, warn)))
}
