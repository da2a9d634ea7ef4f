//go:build unix

package cmdexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup starts the command in a new process group so that package
// manager helpers it forks (node, python, ruby) can be signalled together.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcGroup sends SIGKILL to the command's whole process group.
//
// Parameters:
//   - cmd: The started command
//
// Returns:
//   - error: Error from kill(2); nil when the process was never started
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	// Negative PID targets the group.
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
