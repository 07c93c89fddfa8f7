package api

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gancho/internal/adapters/storage"
	"github.com/renato0307/gancho/internal/safeexec"
	"github.com/renato0307/gancho/internal/services"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewHandler(
		services.NewHookService(db.Hooks()),
		services.NewBudgetService(db.Budgets()),
		services.NewPolicyService(db.Policies()),
		services.NewEventLogService(db.Events()),
		services.NewTestRunner(safeexec.NewShell(), db.Events()),
	)
}

func TestHandler_CreateHook_SuccessEnvelope(t *testing.T) {
	handler := newTestHandler(t)

	resp := handler.CreateHook(context.Background(), CreateHookRequest{
		Name:      "lint",
		EventType: "PostToolUse",
		HookType:  "command",
		Command:   "golangci-lint run",
	})

	require.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.Empty(t, resp.Code)
	assert.Nil(t, resp.Details)

	hook, ok := resp.Data.(Hook)
	require.True(t, ok)
	assert.NotEmpty(t, hook.ID)
	assert.Equal(t, "user", hook.Scope)
	assert.True(t, hook.Enabled)
}

func TestHandler_CreateHook_ValidationErrorEnvelope(t *testing.T) {
	handler := newTestHandler(t)

	resp := handler.CreateHook(context.Background(), CreateHookRequest{
		Name:      "",
		EventType: "NotAnEvent",
		HookType:  "command",
	})

	require.False(t, resp.Success)
	assert.Equal(t, CodeValidationError, resp.Code)
	assert.NotEmpty(t, resp.Error)
	require.NotEmpty(t, resp.Details)

	paths := make([]string, len(resp.Details))
	for i, d := range resp.Details {
		paths[i] = d.Path
	}
	assert.Contains(t, paths, "name")
	assert.Contains(t, paths, "eventType")
}

func TestHandler_GetHook_NotFoundEnvelope(t *testing.T) {
	handler := newTestHandler(t)

	resp := handler.GetHook(context.Background(), "nope")

	require.False(t, resp.Success)
	assert.Equal(t, CodeNotFound, resp.Code)
	assert.Nil(t, resp.Details)
}

func TestHandler_UpdateHook_RederivesScope(t *testing.T) {
	handler := newTestHandler(t)
	ctx := context.Background()

	created := handler.CreateHook(ctx, CreateHookRequest{
		Name:      "scoped",
		EventType: "PreToolUse",
		HookType:  "command",
		Command:   "true",
	})
	require.True(t, created.Success)
	id := created.Data.(Hook).ID

	projectPath := "/work/project"
	resp := handler.UpdateHook(ctx, id, UpdateHookRequest{
		ProjectPath:    &projectPath,
		SetProjectPath: true,
	})
	require.True(t, resp.Success)
	assert.Equal(t, "project", resp.Data.(Hook).Scope)
}

func TestHandler_DeleteHook_MissingStillSucceeds(t *testing.T) {
	handler := newTestHandler(t)

	resp := handler.DeleteHook(context.Background(), "nope")
	assert.True(t, resp.Success)
}

func TestHandler_TestHook_FoldsFailuresIntoData(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell utilities")
	}
	handler := newTestHandler(t)
	ctx := context.Background()

	resp := handler.TestHook(ctx, "cat", map[string]any{"event": "PreToolUse"})
	require.True(t, resp.Success)
	result := resp.Data.(services.TestHookResult)
	assert.Equal(t, 0, result.ExitCode)
	assert.JSONEq(t, `{"event":"PreToolUse"}`, result.Stdout)

	// A failing command is still a success envelope
	resp = handler.TestHook(ctx, "exit 2", nil)
	require.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.(services.TestHookResult).ExitCode)

	// So is an empty command
	resp = handler.TestHook(ctx, "", nil)
	require.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.(services.TestHookResult).ExitCode)
}

func TestHandler_GetBudget_AbsenceIsNullData(t *testing.T) {
	handler := newTestHandler(t)

	resp := handler.GetBudget(context.Background(), nil, nil)
	require.True(t, resp.Success)
	assert.Nil(t, resp.Data)
}

func TestHandler_SetBudget_ThenSpend(t *testing.T) {
	handler := newTestHandler(t)
	ctx := context.Background()

	resp := handler.SetBudget(ctx, SetBudgetRequest{LimitUSD: 10, HardStopEnabled: true})
	require.True(t, resp.Success)
	budget := resp.Data.(Budget)

	resp = handler.AddSpent(ctx, budget.ID, 10)
	require.True(t, resp.Success)
	updated := resp.Data.(Budget)
	assert.True(t, updated.OverLimit)
}

func TestHandler_AddSpent_NegativeIsValidationError(t *testing.T) {
	handler := newTestHandler(t)
	ctx := context.Background()

	created := handler.SetBudget(ctx, SetBudgetRequest{LimitUSD: 10})
	require.True(t, created.Success)

	resp := handler.AddSpent(ctx, created.Data.(Budget).ID, -5)
	require.False(t, resp.Success)
	assert.Equal(t, CodeValidationError, resp.Code)
	require.NotEmpty(t, resp.Details)
	assert.Equal(t, "additionalCost", resp.Details[0].Path)
}

func TestHandler_Decide_DefaultAction(t *testing.T) {
	handler := newTestHandler(t)

	resp := handler.Decide(context.Background(), "Bash(unknown)", nil)
	require.True(t, resp.Success)
	decision := resp.Data.(PolicyDecision)
	assert.Equal(t, "ask", decision.Action)
	assert.Nil(t, decision.Policy)
}

func TestHandler_CleanupEvents_RejectsNonPositiveAge(t *testing.T) {
	handler := newTestHandler(t)

	resp := handler.CleanupEvents(context.Background(), 0)
	require.False(t, resp.Success)
	assert.Equal(t, CodeValidationError, resp.Code)
}
