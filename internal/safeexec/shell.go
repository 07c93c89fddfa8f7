package safeexec

import (
	"os/exec"
	"runtime"

	"github.com/renato0307/gancho/internal/logging"
)

// Shell is the deliberate escape hatch from argv-form execution: it hands
// the command string to the platform shell so pipes, redirects and globbing
// work. It performs no content validation.
//
// Trust contract: the caller guarantees the command string is authored by
// the end user themselves (their own hook) and embeds no unsanitized
// external input. Keeping this a distinct type makes every call site
// greppable in review.
type Shell struct{}

// NewShell creates the shell escape hatch
func NewShell() *Shell {
	return &Shell{}
}

const shellLogPreviewLen = 100

// Run executes a user-authored command string via the platform shell
// ("cmd.exe /c" on Windows, "/bin/sh -c" elsewhere). A truncated preview
// is logged for audit. Failure modes return as data, like the Executor.
func (s *Shell) Run(shellCommand string, opts Options) Result {
	logging.Logger.Info("Shell escape hatch invoked",
		"command", truncate(shellCommand, shellLogPreviewLen))

	name, flag := platformShell()
	cmd := exec.Command(name, flag, shellCommand)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	setProcGroup(cmd)

	return runCommand(cmd, opts.Timeout, opts.Stdin)
}

// platformShell returns the shell binary and its command flag
func platformShell() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd.exe", "/c"
	}
	return "/bin/sh", "-c"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
