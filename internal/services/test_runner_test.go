package services

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/safeexec"
)

func newTestRunner(t *testing.T) (*TestRunner, *EventLogService) {
	t.Helper()
	db := newTestStorage(t)
	runner := NewTestRunner(safeexec.NewShell(), db.Events())
	return runner, NewEventLogService(db.Events())
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell utilities")
	}
}

func TestTestRunner_Run_DeliversInputAsJSONOnStdin(t *testing.T) {
	skipOnWindows(t)
	runner, _ := newTestRunner(t)

	result := runner.Run(context.Background(), "cat", map[string]any{"x": 1})

	assert.Equal(t, 0, result.ExitCode)
	assert.JSONEq(t, `{"x":1}`, result.Stdout)
	assert.Empty(t, result.Stderr)
}

func TestTestRunner_Run_EmptyCommandNeverSpawns(t *testing.T) {
	runner, _ := newTestRunner(t)

	for _, command := range []string{"", "   ", "\t"} {
		result := runner.Run(context.Background(), command, nil)
		assert.Equal(t, 1, result.ExitCode)
		assert.NotEmpty(t, result.Stderr)
		assert.Empty(t, result.Stdout)
	}
}

func TestTestRunner_Run_NonZeroExitPreserved(t *testing.T) {
	skipOnWindows(t)
	runner, _ := newTestRunner(t)

	result := runner.Run(context.Background(), "exit 3", nil)
	assert.Equal(t, 3, result.ExitCode)
}

func TestTestRunner_Run_StderrCapturedAndTrimmed(t *testing.T) {
	skipOnWindows(t)
	runner, _ := newTestRunner(t)

	result := runner.Run(context.Background(), "echo oops >&2; exit 1", nil)

	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, "oops", result.Stderr)
}

func TestTestRunner_Run_TimeoutYields124(t *testing.T) {
	skipOnWindows(t)
	runner, _ := newTestRunner(t)
	runner = runner.WithTimeout(200 * time.Millisecond)

	start := time.Now()
	result := runner.Run(context.Background(), "sleep 10", nil)

	assert.Equal(t, 124, result.ExitCode)
	assert.Contains(t, result.Stderr, "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestTestRunner_Run_TimeoutKeepsPartialOutput(t *testing.T) {
	skipOnWindows(t)
	runner, _ := newTestRunner(t)
	runner = runner.WithTimeout(300 * time.Millisecond)

	result := runner.Run(context.Background(), "echo early; sleep 10", nil)

	assert.Equal(t, 124, result.ExitCode)
	assert.Contains(t, result.Stdout, "early")
}

func TestTestRunner_Run_AppendsSyntheticEvent(t *testing.T) {
	skipOnWindows(t)
	runner, events := newTestRunner(t)
	ctx := context.Background()

	runner.Run(ctx, "echo ok", nil)
	runner.Run(ctx, "exit 1", nil)

	records, err := events.ByType(ctx, domain.EventHookTest, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	outcomes := []string{records[0].Outcome, records[1].Outcome}
	assert.ElementsMatch(t, []string{domain.OutcomeSuccess, domain.OutcomeFailure}, outcomes)
}

func TestTestRunner_Run_NilEventLogStillReturnsResult(t *testing.T) {
	skipOnWindows(t)
	runner := NewTestRunner(safeexec.NewShell(), nil)

	result := runner.Run(context.Background(), "echo ok", nil)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "ok", result.Stdout)
}
