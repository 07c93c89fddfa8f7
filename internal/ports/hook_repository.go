package ports

import (
	"context"
	"time"

	"github.com/renato0307/gancho/internal/domain"
)

// HookReader reads hook configurations
type HookReader interface {
	Get(ctx context.Context, id string) (*domain.HookConfig, error)
	List(ctx context.Context) ([]domain.HookConfig, error)
	// ListByEventType returns enabled hooks for a firing event. Project
	// scoped hooks are filtered to the given project path; user-scoped
	// hooks are always included.
	ListByEventType(ctx context.Context, eventType domain.HookEventType, projectPath string) ([]domain.HookConfig, error)
}

// HookWriter creates, updates and deletes hook configurations
type HookWriter interface {
	Create(ctx context.Context, hook domain.HookConfig) error
	Update(ctx context.Context, hook domain.HookConfig) error
	// Delete is idempotent; deleting a missing id is not an error
	Delete(ctx context.Context, id string) error
	// RecordExecution bumps execution count and last-result bookkeeping
	// after a real (non-test) firing
	RecordExecution(ctx context.Context, id string, result domain.HookResult, at time.Time) error
}

// HookRepository is the composite interface
type HookRepository interface {
	HookReader
	HookWriter
}
