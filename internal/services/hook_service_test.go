package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gancho/internal/domain"
)

func TestHookService_Create_AppliesDefaults(t *testing.T) {
	svc := NewHookService(newTestStorage(t).Hooks())

	created, err := svc.Create(context.Background(), domain.HookConfig{
		Name:      "fmt-check",
		EventType: domain.EventPostToolUse,
		HookType:  domain.HookTypeCommand,
		Command:   "gofmt -l .",
		Enabled:   true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.DefaultHookTimeoutMs, created.TimeoutMs)
	assert.Equal(t, domain.ScopeUser, created.Scope)
	assert.Zero(t, created.ExecutionCount)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestHookService_Create_DerivesProjectScope(t *testing.T) {
	svc := NewHookService(newTestStorage(t).Hooks())

	projectPath := "/work/project"
	created, err := svc.Create(context.Background(), domain.HookConfig{
		Name:        "project-hook",
		EventType:   domain.EventSessionStart,
		HookType:    domain.HookTypeCommand,
		Command:     "make setup",
		Enabled:     true,
		ProjectPath: &projectPath,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeProject, created.Scope)
}

func TestHookService_Create_InvalidHookRejectedBeforeStore(t *testing.T) {
	db := newTestStorage(t)
	svc := NewHookService(db.Hooks())

	_, err := svc.Create(context.Background(), domain.HookConfig{
		Name:      "broken",
		EventType: "NotAnEvent",
		HookType:  domain.HookTypeCommand,
		Command:   "true",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	hooks, listErr := svc.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, hooks, "rejected hook must not be stored")
}

func TestHookService_Update_MergesPatch(t *testing.T) {
	svc := NewHookService(newTestStorage(t).Hooks())
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.HookConfig{
		Name:      "original",
		EventType: domain.EventPreToolUse,
		HookType:  domain.HookTypeCommand,
		Command:   "true",
		Enabled:   true,
	})
	require.NoError(t, err)

	newName := "renamed"
	disabled := false
	updated, err := svc.Update(ctx, created.ID, domain.HookPatch{
		Name:    &newName,
		Enabled: &disabled,
	})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Name)
	assert.False(t, updated.Enabled)
	assert.Equal(t, created.Command, updated.Command, "unpatched fields keep values")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestHookService_Update_ProjectPathChangeRederivesScope(t *testing.T) {
	svc := NewHookService(newTestStorage(t).Hooks())
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.HookConfig{
		Name:      "scoped",
		EventType: domain.EventPreToolUse,
		HookType:  domain.HookTypeCommand,
		Command:   "true",
		Enabled:   true,
	})
	require.NoError(t, err)

	projectPath := "/work/project"
	updated, err := svc.Update(ctx, created.ID, domain.HookPatch{
		ProjectPath:    &projectPath,
		SetProjectPath: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeProject, updated.Scope)

	updated, err = svc.Update(ctx, created.ID, domain.HookPatch{SetProjectPath: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeUser, updated.Scope)
	assert.Nil(t, updated.ProjectPath)
}

func TestHookService_Update_Missing(t *testing.T) {
	svc := NewHookService(newTestStorage(t).Hooks())

	_, err := svc.Update(context.Background(), "nope", domain.HookPatch{})
	assert.ErrorIs(t, err, domain.ErrHookNotFound)
}

func TestHookService_GetHooksByEventType_RejectsUnknownEvent(t *testing.T) {
	svc := NewHookService(newTestStorage(t).Hooks())

	_, err := svc.GetHooksByEventType(context.Background(), "NotAnEvent", "")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
