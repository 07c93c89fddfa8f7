package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/logging"
	"github.com/renato0307/gancho/internal/ports"
)

// HookService is the hook registry: CRUD over hook configurations plus the
// lookup the dispatcher uses when an event fires.
type HookService struct {
	hooks ports.HookRepository
}

// NewHookService creates a new HookService
func NewHookService(hooks ports.HookRepository) *HookService {
	return &HookService{hooks: hooks}
}

// Create validates and stores a new hook. Defaults: timeout 60s when
// unset, scope derived from projectPath when unset.
func (s *HookService) Create(ctx context.Context, hook domain.HookConfig) (*domain.HookConfig, error) {
	if hook.TimeoutMs == 0 {
		hook.TimeoutMs = domain.DefaultHookTimeoutMs
	}
	if hook.Scope == "" {
		hook.Scope = domain.DeriveScope(hook.ProjectPath)
	}

	if err := hook.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	hook.ID = uuid.New().String()
	hook.CreatedAt = now
	hook.UpdatedAt = now
	hook.ExecutionCount = 0
	hook.LastExecuted = nil
	hook.LastResult = nil

	if err := s.hooks.Create(ctx, hook); err != nil {
		return nil, err
	}

	logging.Logger.Info("Hook created",
		"id", hook.ID,
		"name", hook.Name,
		"event_type", hook.EventType,
		"scope", hook.Scope)
	return &hook, nil
}

// Get returns a hook by id
func (s *HookService) Get(ctx context.Context, id string) (*domain.HookConfig, error) {
	return s.hooks.Get(ctx, id)
}

// List returns all hooks
func (s *HookService) List(ctx context.Context) ([]domain.HookConfig, error) {
	return s.hooks.List(ctx)
}

// Update merges a partial patch into the stored hook. Unspecified fields
// retain prior values; a projectPath change re-derives scope inside the
// merge instead of trusting caller input. Returns ErrHookNotFound for a
// missing id.
func (s *HookService) Update(ctx context.Context, id string, patch domain.HookPatch) (*domain.HookConfig, error) {
	hook, err := s.hooks.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(hook)

	if err := hook.Validate(); err != nil {
		return nil, err
	}

	hook.UpdatedAt = time.Now().UTC()
	if err := s.hooks.Update(ctx, *hook); err != nil {
		return nil, err
	}

	logging.Logger.Info("Hook updated", "id", hook.ID, "name", hook.Name)
	return hook, nil
}

// Delete removes a hook by id. Deleting a missing id is not an error.
func (s *HookService) Delete(ctx context.Context, id string) error {
	if err := s.hooks.Delete(ctx, id); err != nil {
		return err
	}
	logging.Logger.Info("Hook deleted", "id", id)
	return nil
}

// GetHooksByEventType returns the enabled candidates for a firing event.
// Project-scoped hooks are included only when they match projectPath.
func (s *HookService) GetHooksByEventType(ctx context.Context, eventType domain.HookEventType, projectPath string) ([]domain.HookConfig, error) {
	if !eventType.Valid() {
		verr := &domain.ValidationError{}
		return nil, verr.Add("eventType", "unknown event type")
	}
	return s.hooks.ListByEventType(ctx, eventType, projectPath)
}

// RecordExecution updates execution bookkeeping after a real (non-test)
// firing. Only the external dispatcher calls this.
func (s *HookService) RecordExecution(ctx context.Context, id string, result domain.HookResult, at time.Time) error {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return s.hooks.RecordExecution(ctx, id, result, at)
}
