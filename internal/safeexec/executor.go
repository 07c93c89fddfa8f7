package safeexec

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/gancho/internal/logging"
)

// Result is the outcome of one execution. It is transient and never
// persisted. ExitCode is nil when the process never ran or was killed
// before reporting one.
type Result struct {
	Success  bool   `json:"success"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode *int   `json:"exitCode"`
	Error    string `json:"error,omitempty"`
	TimedOut bool   `json:"timedOut,omitempty"`
}

// Options configures a single execution
type Options struct {
	// Dir is the working directory; empty means inherit
	Dir string
	// Env is the full environment; nil means inherit
	Env []string
	// Stdin is written to the child's standard input, then closed
	Stdin string
	// Timeout bounds wall-clock runtime; zero means no timeout
	Timeout time.Duration
	// SkipValidation skips the argument check only. Reserved for call
	// sites passing hardcoded, non-user-controlled argv.
	SkipValidation bool
}

// Executor spawns processes in argv form with the shell disabled
// unconditionally. All failure modes return as data; no method panics
// or returns a Go error for execution failures.
type Executor struct{}

// NewExecutor creates a new Executor
func NewExecutor() *Executor {
	return &Executor{}
}

// Exec runs a command to completion, blocking the caller. The timeout, if
// set, is enforced by the process runner itself rather than a caller-side
// timer.
func (e *Executor) Exec(command string, args []string, opts Options) Result {
	cmd, result := e.prepare(command, args, opts)
	if cmd == nil {
		return result
	}
	return runCommand(cmd, opts.Timeout, opts.Stdin)
}

// ExecAsync runs a command while accumulating stdout/stderr incrementally,
// racing normal completion, spawn error and the timeout timer. Exactly one
// of the three resolves the result; on timeout the child is killed and the
// result carries whatever output had accumulated plus an error mentioning
// the timeout.
func (e *Executor) ExecAsync(command string, args []string, opts Options) Result {
	cmd, result := e.prepare(command, args, opts)
	if cmd == nil {
		return result
	}
	return runCommand(cmd, opts.Timeout, opts.Stdin)
}

// Start spawns a validated command and returns the live process handle for
// streaming call sites. The caller owns Wait.
func (e *Executor) Start(command string, args []string, opts Options) (*exec.Cmd, error) {
	cmd, result := e.prepare(command, args, opts)
	if cmd == nil {
		return nil, errors.New(result.Error)
	}
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}
	return cmd, nil
}

// prepare validates inputs and builds the exec.Cmd. A nil cmd means
// validation failed and the accompanying Result is the final answer.
func (e *Executor) prepare(command string, args []string, opts Options) (*exec.Cmd, Result) {
	if err := ValidateCommand(command); err != nil {
		logging.Logger.Warn("Rejected command", "error", err)
		return nil, Result{Success: false, Error: err.Error()}
	}
	if !opts.SkipValidation {
		if err := ValidateArgs(args); err != nil {
			logging.Logger.Warn("Rejected arguments", "command", command, "error", err)
			return nil, Result{Success: false, Error: err.Error()}
		}
	}

	cmd := exec.Command(command, args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	setProcGroup(cmd)
	return cmd, Result{}
}

// lockedBuffer is a mutex-guarded buffer; the pipe readers write while the
// timeout path reads.
type lockedBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// runCommand starts cmd and races completion against the timeout. The
// select resolves exactly once even when close and timer fire together.
func runCommand(cmd *exec.Cmd, timeout time.Duration, stdin string) Result {
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var outBuf, errBuf lockedBuffer

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	if err := cmd.Start(); err != nil {
		// Spawn failure (e.g. command not found) returns as data
		return Result{Success: false, Error: err.Error()}
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&outBuf, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errBuf, stderr)
		return err
	})

	waitDone := make(chan error, 1)
	go func() {
		_ = g.Wait()
		waitDone <- cmd.Wait()
	}()

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case waitErr := <-waitDone:
		exitCode := 0
		if waitErr != nil {
			var exitErr *exec.ExitError
			if errors.As(waitErr, &exitErr) {
				exitCode = exitErr.ExitCode()
			} else {
				return Result{
					Success: false,
					Stdout:  outBuf.String(),
					Stderr:  errBuf.String(),
					Error:   waitErr.Error(),
				}
			}
		}
		return Result{
			Success:  waitErr == nil,
			Stdout:   outBuf.String(),
			Stderr:   errBuf.String(),
			ExitCode: &exitCode,
			Error:    errorFromWait(waitErr),
		}

	case <-timer:
		killProcess(cmd)
		<-waitDone // reap; killing an exited child above was a no-op
		return Result{
			Success:  false,
			Stdout:   outBuf.String(),
			Stderr:   errBuf.String(),
			Error:    fmt.Sprintf("command timed out after %s", timeout),
			TimedOut: true,
		}
	}
}

func errorFromWait(waitErr error) string {
	if waitErr == nil {
		return ""
	}
	return waitErr.Error()
}
