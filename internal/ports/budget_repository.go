package ports

import (
	"context"
	"time"

	"github.com/renato0307/gancho/internal/domain"
)

// BudgetRepository persists per-scope spend ledgers. The scope key is the
// (projectPath, sessionID) pair with nil meaning "not part of the key
// value"; lookups are exact, with no project-to-global fallback.
type BudgetRepository interface {
	Create(ctx context.Context, record domain.BudgetRecord) error
	GetByID(ctx context.Context, id string) (*domain.BudgetRecord, error)
	GetByScope(ctx context.Context, projectPath, sessionID *string) (*domain.BudgetRecord, error)
	List(ctx context.Context) ([]domain.BudgetRecord, error)
	Update(ctx context.Context, record domain.BudgetRecord) error
	// AddSpent atomically increments spent_usd by a non-negative delta
	AddSpent(ctx context.Context, id string, delta float64) error
	// Reset zeroes spent_usd and bumps last_reset
	Reset(ctx context.Context, id string, at time.Time) error
}
