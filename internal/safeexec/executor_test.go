package safeexec

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell utilities")
	}
}

func TestExecutor_Exec_CapturesStdout(t *testing.T) {
	skipOnWindows(t)

	result := NewExecutor().Exec("echo", []string{"hello"}, Options{})

	assert.True(t, result.Success)
	assert.Equal(t, "hello\n", result.Stdout)
	require.NotNil(t, result.ExitCode)
	assert.Equal(t, 0, *result.ExitCode)
	assert.Empty(t, result.Error)
}

func TestExecutor_Exec_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	result := NewExecutor().Exec("false", nil, Options{})

	assert.False(t, result.Success)
	require.NotNil(t, result.ExitCode)
	assert.Equal(t, 1, *result.ExitCode)
}

func TestExecutor_Exec_InvalidCommandNeverSpawns(t *testing.T) {
	result := NewExecutor().Exec("git;rm", nil, Options{})

	assert.False(t, result.Success)
	assert.Nil(t, result.ExitCode)
	assert.Contains(t, result.Error, "invalid characters")
}

func TestExecutor_Exec_DangerousArgRejected(t *testing.T) {
	result := NewExecutor().Exec("echo", []string{"$(whoami)"}, Options{})

	assert.False(t, result.Success)
	assert.Nil(t, result.ExitCode)
	assert.Contains(t, result.Error, "argument 0")
}

func TestExecutor_Exec_SkipValidationAllowsDangerousArgs(t *testing.T) {
	skipOnWindows(t)

	// Argv-form execution means the arg is passed literally, not interpreted
	result := NewExecutor().Exec("echo", []string{"$(whoami)"}, Options{SkipValidation: true})

	assert.True(t, result.Success)
	assert.Equal(t, "$(whoami)\n", result.Stdout)
}

func TestExecutor_Exec_MissingBinaryReturnsAsData(t *testing.T) {
	result := NewExecutor().Exec("definitely-not-a-real-binary-xyz", nil, Options{})

	assert.False(t, result.Success)
	assert.Nil(t, result.ExitCode)
	assert.NotEmpty(t, result.Error)
}

func TestExecutor_Exec_StdinIsDelivered(t *testing.T) {
	skipOnWindows(t)

	result := NewExecutor().Exec("cat", nil, Options{Stdin: "piped input"})

	assert.True(t, result.Success)
	assert.Equal(t, "piped input", result.Stdout)
}

func TestExecutor_Exec_TimeoutKillsProcess(t *testing.T) {
	skipOnWindows(t)

	start := time.Now()
	result := NewExecutor().Exec("sleep", []string{"10"}, Options{Timeout: 200 * time.Millisecond})
	elapsed := time.Since(start)

	assert.False(t, result.Success)
	assert.True(t, result.TimedOut)
	assert.Contains(t, result.Error, "timed out")
	assert.Less(t, elapsed, 5*time.Second, "timeout must not wait for the full sleep")
}

func TestExecutor_Exec_TimeoutKeepsAccumulatedOutput(t *testing.T) {
	skipOnWindows(t)

	result := NewExecutor().Exec("sh",
		[]string{"-c", "echo early; sleep 10"},
		Options{Timeout: 300 * time.Millisecond, SkipValidation: true})

	assert.True(t, result.TimedOut)
	assert.Contains(t, result.Stdout, "early")
}

func TestExecutor_ExecAsync_MatchesExecBehavior(t *testing.T) {
	skipOnWindows(t)

	result := NewExecutor().ExecAsync("echo", []string{"async"}, Options{})

	assert.True(t, result.Success)
	assert.Equal(t, "async\n", result.Stdout)
}

func TestExecutor_Start_ReturnsLiveHandle(t *testing.T) {
	skipOnWindows(t)

	cmd, err := NewExecutor().Start("sleep", []string{"0.1"}, Options{})
	require.NoError(t, err)
	require.NotNil(t, cmd.Process)
	assert.NoError(t, cmd.Wait())
}

func TestExecutor_Start_InvalidCommandFails(t *testing.T) {
	_, err := NewExecutor().Start("git;rm", nil, Options{})
	assert.Error(t, err)
}

func TestShell_Run_SupportsPipes(t *testing.T) {
	skipOnWindows(t)

	result := NewShell().Run("echo one two | wc -w", Options{})

	assert.True(t, result.Success)
	assert.Equal(t, "2", strings.TrimSpace(result.Stdout))
}

func TestShell_Run_StdinIsDelivered(t *testing.T) {
	skipOnWindows(t)

	result := NewShell().Run("cat", Options{Stdin: `{"x":1}`})

	assert.True(t, result.Success)
	assert.Equal(t, `{"x":1}`, result.Stdout)
}

func TestShell_Run_TimeoutKillsPipeline(t *testing.T) {
	skipOnWindows(t)

	result := NewShell().Run("sleep 10", Options{Timeout: 200 * time.Millisecond})

	assert.False(t, result.Success)
	assert.True(t, result.TimedOut)
}
