package probes

import (
	"context"
	"testing"

	"github.com/ajxudir/bagpack/pkg/cmdexec"
	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	brewList     = "brew list --versions"
	brewOutdated = "brew outdated --json=v2"
)

func strPtr(s string) *string { return &s }

// TestBrewProbe_Collect tests the behavior of BrewProbe.Collect.
//
// It verifies:
//   - A package with a newer latest version is outdated
//   - A package missing from the outdated list is current with no latest version
//   - Records keep the list order and carry the brew manager tag
func TestBrewProbe_Collect(t *testing.T) {
	runner := testutil.NewFakeRunner().
		OnStdout(brewList, "wget 1.24.5\ntypescript 5.5.2\n").
		OnStdout(brewOutdated, `{"formulae":[{"name":"wget","installed_versions":["1.24.5"],"current_version":"1.24.6","latest_version":"1.24.6"}],"casks":[]}`)

	records, err := NewBrewProbe("brew", nil, runner.Run).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []inventory.PackageRecord{
		{Name: "wget", CurrentVersion: "1.24.5", LatestVersion: strPtr("1.24.6"), Status: inventory.StatusOutdated, Manager: inventory.ManagerBrew},
		{Name: "typescript", CurrentVersion: "5.5.2", Status: inventory.StatusCurrent, Manager: inventory.ManagerBrew},
	}, records)
	assert.Equal(t, []string{brewList, brewOutdated}, runner.Calls())
}

// TestBrewProbe_ParseList tests the parsing of `brew list --versions` output.
//
// It verifies:
//   - The last token is the version when several are installed
//   - Blank lines and lines without a version are skipped
func TestBrewProbe_ParseList(t *testing.T) {
	p := NewBrewProbe("", nil, nil)
	packages := p.parseList("\n  \nopenssl@3 3.3.1 3.3.2\nbroken\n\tjq   1.7.1  \n")
	assert.Equal(t, []installed{
		{name: "openssl@3", version: "3.3.2"},
		{name: "jq", version: "1.7.1"},
	}, packages)
}

// TestBrewProbe_LatestVersionFallback tests the choice of the latest version.
//
// It verifies:
//   - latest_version is preferred
//   - current_version is used when latest_version is missing or blank
//   - Entries where both are missing or blank are skipped
func TestBrewProbe_LatestVersionFallback(t *testing.T) {
	p := NewBrewProbe("", nil, nil)
	latest, err := p.parseOutdated(`{"formulae":[
		{"name":"a","current_version":"2.0","latest_version":"2.1"},
		{"name":"b","current_version":"3.0"},
		{"name":"c","current_version":"4.0","latest_version":"   "},
		{"name":"d","current_version":" ","latest_version":""},
		{"name":"e"},
		{"current_version":"9.9"},
		"not an object"
	]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "2.1", "b": "3.0", "c": "4.0"}, latest)
}

// TestBrewProbe_BlankOutdated tests that blank outdated output means nothing is outdated.
func TestBrewProbe_BlankOutdated(t *testing.T) {
	runner := testutil.NewFakeRunner().
		OnStdout(brewList, "wget 1.24.5\n").
		OnStdout(brewOutdated, "  \n")

	records, err := NewBrewProbe("brew", nil, runner.Run).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, inventory.StatusCurrent, records[0].Status)
	assert.Nil(t, records[0].LatestVersion)
}

// TestBrewProbe_NothingInstalled tests that the outdated command is skipped when nothing is installed.
func TestBrewProbe_NothingInstalled(t *testing.T) {
	runner := testutil.NewFakeRunner().OnStdout(brewList, "\n")

	records, err := NewBrewProbe("brew", nil, runner.Run).Collect(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.False(t, runner.Called(brewOutdated))
}

// TestBrewProbe_Failures tests how command and parse failures surface.
//
// It verifies:
//   - A missing brew fails with a CommandError naming the manager
//   - A failing list command stops before the outdated command
//   - Malformed outdated JSON fails with a ParseError naming the command
func TestBrewProbe_Failures(t *testing.T) {
	t.Run("not installed", func(t *testing.T) {
		runner := testutil.NewFakeRunner()
		_, err := NewBrewProbe("brew", nil, runner.Run).Collect(context.Background())
		require.Error(t, err)

		ce, ok := errors.IsCommandError(err)
		require.True(t, ok)
		assert.Equal(t, "brew", ce.Manager)
		assert.Equal(t, "brew failed to run: brew list --versions: command not found", err.Error())
	})

	t.Run("list exits non-zero", func(t *testing.T) {
		runner := testutil.NewFakeRunner().
			On(brewList, testutil.FakeResponse{ExitCode: 1, Stderr: "Error: permission denied\n"})

		_, err := NewBrewProbe("brew", nil, runner.Run).Collect(context.Background())
		require.Error(t, err)
		_, ok := cmdexec.IsExitCodeError(err)
		assert.True(t, ok)
		assert.False(t, runner.Called(brewOutdated))
	})

	t.Run("malformed outdated", func(t *testing.T) {
		runner := testutil.NewFakeRunner().
			OnStdout(brewList, "wget 1.24.5\n").
			OnStdout(brewOutdated, `[{"name":"wget"}]`)

		_, err := NewBrewProbe("brew", nil, runner.Run).Collect(context.Background())
		require.Error(t, err)

		pe, ok := errors.IsParseError(err)
		require.True(t, ok)
		assert.Equal(t, brewOutdated, pe.Label)
		assert.Contains(t, err.Error(), "failed to parse brew outdated --json=v2 output")
	})
}

// TestBrewProbe_CommandSettings tests that the configured program and env are used.
func TestBrewProbe_CommandSettings(t *testing.T) {
	runner := testutil.NewFakeRunner().OnStdout("/opt/homebrew/bin/brew list --versions", "")
	env := map[string]string{"HOMEBREW_NO_AUTO_UPDATE": "1"}

	_, err := NewBrewProbe("/opt/homebrew/bin/brew", env, runner.Run).Collect(context.Background())
	require.NoError(t, err)

	cmds := runner.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, env, cmds[0].Env)
	assert.Empty(t, cmds[0].AllowedExitCodes)
}
