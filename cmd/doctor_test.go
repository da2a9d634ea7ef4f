package cmd

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/testutil"
)

// TestDoctor tests the doctor command against real PATH lookups.
//
// It verifies:
//   - Found commands are shown with their path
//   - Disabled managers are shown as disabled
//   - A missing command fails with ExitConfigError and an install hint
func TestDoctor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh being on PATH")
	}

	t.Run("all found", func(t *testing.T) {
		cli := newCLI(t, testutil.NewFakeRunner())
		cli.writeConfig(t, "managers:\n  brew: {command: sh}\n  npm: {command: sh}\n  pip: {enabled: false}\n")

		require.NoError(t, cli.execute("doctor"))
		out := cli.stdout.String()
		assert.Contains(t, out, "🟢 brew  ")
		assert.Contains(t, out, "🟢 npm   ")
		assert.Contains(t, out, "⚪ pip   disabled")
	})

	t.Run("missing", func(t *testing.T) {
		cli := newCLI(t, testutil.NewFakeRunner())
		cli.writeConfig(t, "managers:\n  brew: {command: sh}\n  npm: {command: bagpack-missing-npm}\n  pip: {enabled: false}\n")

		err := cli.execute("doctor")
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.EqualError(t, err, "1 package manager command(s) not found")

		out := cli.stdout.String()
		assert.Contains(t, out, "❌ npm   bagpack-missing-npm not found")
		assert.Contains(t, out, "💡 Install Node.js: https://nodejs.org/")
	})
}
