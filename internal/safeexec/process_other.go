//go:build !unix

package safeexec

import "os/exec"

func setProcGroup(cmd *exec.Cmd) {}

// killProcess terminates the child. Killing an already exited process is a
// no-op.
func killProcess(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
