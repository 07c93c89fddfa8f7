//go:build unix

package safeexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup puts the child in its own process group so a timeout kill
// reaches grandchildren too.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcess kills the child's whole process group. Killing an already
// exited process is a no-op.
func killProcess(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
