package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/logging"
	"github.com/renato0307/gancho/internal/ports"
	"github.com/renato0307/gancho/internal/safeexec"
)

// DefaultTestTimeout bounds a hook test run
const DefaultTestTimeout = 30 * time.Second

// Conventional exit code for a timed-out command
const timeoutExitCode = 124

const testCommandPreviewLen = 200

// TestHookResult is the renderable outcome of a hook test. The runner
// always produces one; a "Test" action never surfaces a raw crash.
type TestHookResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

// TestRunner executes a candidate hook command through the shell escape
// hatch with a synthetic JSON payload on stdin, under a hard timeout.
// Hook commands are user-authored, which is exactly the escape hatch's
// trust contract.
type TestRunner struct {
	events  ports.EventLogRepository
	shell   *safeexec.Shell
	timeout time.Duration
}

// NewTestRunner creates a TestRunner with the default 30s timeout
func NewTestRunner(shell *safeexec.Shell, events ports.EventLogRepository) *TestRunner {
	return &TestRunner{
		events:  events,
		shell:   shell,
		timeout: DefaultTestTimeout,
	}
}

// WithTimeout overrides the test timeout
func (r *TestRunner) WithTimeout(timeout time.Duration) *TestRunner {
	r.timeout = timeout
	return r
}

// Run executes the command with input serialized as JSON on stdin. It
// never returns an error: validation failures, spawn errors and timeouts
// all fold into the result (exit code 1 for the first two, 124 for
// timeouts).
func (r *TestRunner) Run(ctx context.Context, command string, input any) TestHookResult {
	started := time.Now()

	if strings.TrimSpace(command) == "" {
		return r.finish(ctx, "", started, TestHookResult{
			Stderr:   "command is required",
			ExitCode: 1,
		})
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return r.finish(ctx, "", started, TestHookResult{
			Stderr:   fmt.Sprintf("failed to serialize input: %v", err),
			ExitCode: 1,
		})
	}

	preview := command
	if len(preview) > testCommandPreviewLen {
		preview = preview[:testCommandPreviewLen] + "..."
	}
	logging.Logger.Info("Testing hook command", "command", preview)

	execResult := r.shell.Run(command, safeexec.Options{
		Stdin:   string(payload),
		Timeout: r.timeout,
	})

	result := TestHookResult{
		Stdout: strings.TrimSpace(execResult.Stdout),
		Stderr: strings.TrimSpace(execResult.Stderr),
	}

	switch {
	case execResult.TimedOut:
		result.ExitCode = timeoutExitCode
		if result.Stderr == "" {
			result.Stderr = fmt.Sprintf("Command timed out after %d seconds", int(r.timeout.Seconds()))
		}
	case execResult.ExitCode == nil:
		// Spawn error: the command never ran
		result.ExitCode = 1
		if result.Stderr == "" {
			result.Stderr = execResult.Error
		}
	default:
		result.ExitCode = *execResult.ExitCode
	}

	return r.finish(ctx, command, started, result)
}

// finish records the synthetic test event and returns the result. Logging
// the event is best effort; a test result must always render.
func (r *TestRunner) finish(ctx context.Context, command string, started time.Time, result TestHookResult) TestHookResult {
	if r.events == nil {
		return result
	}

	outcome := domain.OutcomeSuccess
	switch {
	case result.ExitCode == timeoutExitCode:
		outcome = domain.OutcomeTimeout
	case result.ExitCode != 0:
		outcome = domain.OutcomeFailure
	}

	metadata, _ := json.Marshal(map[string]any{
		"command":  truncateForMetadata(command),
		"exitCode": result.ExitCode,
	})

	record := domain.HookEventRecord{
		DurationMs: time.Since(started).Milliseconds(),
		EventType:  domain.EventHookTest,
		Metadata:   string(metadata),
		Outcome:    outcome,
		Timestamp:  started.UTC(),
	}
	record.ID = uuid.New().String()

	if err := r.events.Append(ctx, record); err != nil {
		logging.Logger.Warn("Failed to record hook test event", "error", err)
	}
	return result
}

func truncateForMetadata(command string) string {
	if len(command) > testCommandPreviewLen {
		return command[:testCommandPreviewLen]
	}
	return command
}
