//go:build windows

package cmdexec

import (
	"os/exec"
)

// setProcGroup is a no-op on Windows.
func setProcGroup(cmd *exec.Cmd) {}

// killProcGroup kills the process; child processes of npm.cmd and pip.exe
// exit once their parent console process is gone.
//
// Parameters:
//   - cmd: The started command
//
// Returns:
//   - error: Error from Process.Kill; nil when the process was never started
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
