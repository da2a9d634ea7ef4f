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
	npmList     = "npm ls -g --depth=0 --json"
	npmOutdated = "npm outdated -g --json"
)

const npmListJSON = `{
  "name": "lib",
  "dependencies": {
    "typescript": {"version": "5.5.2", "overridden": false},
    "npm": {"version": "10.8.1"},
    "corepack": {"version": "0.29.3"}
  }
}`

// TestNpmProbe_OutdatedExitOne tests that exit code 1 from npm outdated is a success.
//
// It verifies:
//   - The outdated command is run with exit code 1 allowed
//   - Its JSON is used for the latest versions
//   - Record order follows the dependencies object
func TestNpmProbe_OutdatedExitOne(t *testing.T) {
	runner := testutil.NewFakeRunner().
		OnStdout(npmList, npmListJSON).
		On(npmOutdated, testutil.FakeResponse{
			ExitCode: 1,
			Stdout:   `{"typescript":{"current":"5.5.2","wanted":"5.5.2","latest":"5.6.3","location":"/usr/lib/node_modules/typescript"}}`,
		})

	records, err := NewNpmProbe("npm", nil, runner.Run).Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "typescript", records[0].Name)
	assert.Equal(t, inventory.StatusOutdated, records[0].Status)
	assert.Equal(t, "5.6.3", records[0].Latest())
	assert.Equal(t, "npm", records[1].Name)
	assert.Equal(t, "corepack", records[2].Name)
	for _, r := range records {
		assert.Equal(t, inventory.ManagerNpm, r.Manager)
	}
	assert.Equal(t, inventory.StatusCurrent, records[1].Status)

	cmds := runner.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, []int{1}, cmds[1].AllowedExitCodes)
}

// TestNpmProbe_OutdatedOtherExitCode tests that exit codes other than 0 and 1 fail the probe.
func TestNpmProbe_OutdatedOtherExitCode(t *testing.T) {
	runner := testutil.NewFakeRunner().
		OnStdout(npmList, npmListJSON).
		On(npmOutdated, testutil.FakeResponse{ExitCode: 2, Stderr: "npm ERR! network"})

	_, err := NewNpmProbe("npm", nil, runner.Run).Collect(context.Background())
	require.Error(t, err)

	exitErr, ok := cmdexec.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "npm failed to run: npm outdated -g --json exited with code 2")
}

// TestNpmProbe_ParseList tests the parsing of `npm ls` output.
//
// It verifies:
//   - Entries without a string version are dropped
//   - A document without dependencies, or blank output, lists nothing
//   - Non-object documents and dependency values are parse failures
func TestNpmProbe_ParseList(t *testing.T) {
	p := NewNpmProbe("", nil, nil)

	t.Run("drops entries without version", func(t *testing.T) {
		packages, err := p.parseList(`{"dependencies":{"a":{"version":"1.0.0"},"b":{},"c":{"version":3},"d":"x","e":{"version":"2.0.0"}}}`)
		require.NoError(t, err)
		assert.Equal(t, []installed{{name: "a", version: "1.0.0"}, {name: "e", version: "2.0.0"}}, packages)
	})

	t.Run("no dependencies", func(t *testing.T) {
		packages, err := p.parseList(`{"name":"lib"}`)
		require.NoError(t, err)
		assert.Empty(t, packages)
	})

	t.Run("blank output", func(t *testing.T) {
		packages, err := p.parseList(" \n")
		require.NoError(t, err)
		assert.Empty(t, packages)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := p.parseList(`["typescript"]`)
		assert.Error(t, err)
	})

	t.Run("dependencies not an object", func(t *testing.T) {
		_, err := p.parseList(`{"dependencies":["typescript"]}`)
		assert.Error(t, err)
	})
}

// TestNpmProbe_ParseOutdated tests the parsing of `npm outdated` output.
func TestNpmProbe_ParseOutdated(t *testing.T) {
	p := NewNpmProbe("", nil, nil)

	latest, err := p.parseOutdated(`{"typescript":{"latest":"5.6.3"},"npm":{"current":"10.8.1"},"odd":[1],"blank":{"latest":" "}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"typescript": "5.6.3"}, latest)

	latest, err = p.parseOutdated("\n")
	require.NoError(t, err)
	assert.Empty(t, latest)

	_, err = p.parseOutdated(`[]`)
	assert.Error(t, err)
}

// TestNpmProbe_Failures tests that a broken list or missing npm fails the probe.
func TestNpmProbe_Failures(t *testing.T) {
	t.Run("malformed list", func(t *testing.T) {
		runner := testutil.NewFakeRunner().OnStdout(npmList, "npm WARN something\n")

		_, err := NewNpmProbe("npm", nil, runner.Run).Collect(context.Background())
		pe, ok := errors.IsParseError(err)
		require.True(t, ok)
		assert.Equal(t, npmList, pe.Label)
		assert.False(t, runner.Called(npmOutdated))
	})

	t.Run("nothing installed", func(t *testing.T) {
		runner := testutil.NewFakeRunner().OnStdout(npmList, `{"dependencies":{}}`)

		records, err := NewNpmProbe("npm", nil, runner.Run).Collect(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.False(t, runner.Called(npmOutdated))
	})

	t.Run("blank list", func(t *testing.T) {
		runner := testutil.NewFakeRunner().OnStdout(npmList, "")

		records, err := NewNpmProbe("npm", nil, runner.Run).Collect(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.False(t, runner.Called(npmOutdated))
	})

	t.Run("not installed", func(t *testing.T) {
		_, err := NewNpmProbe("npm", nil, testutil.NewFakeRunner().Run).Collect(context.Background())
		assert.EqualError(t, err, "npm failed to run: npm ls -g --depth=0 --json: command not found")
	})
}
