package ports

import (
	"context"

	"github.com/renato0307/gancho/internal/domain"
)

// PolicyRepository persists approval policies
type PolicyRepository interface {
	Create(ctx context.Context, policy domain.ApprovalPolicy) error
	Get(ctx context.Context, id string) (*domain.ApprovalPolicy, error)
	List(ctx context.Context) ([]domain.ApprovalPolicy, error)
	// ListEnabled returns enabled policies ordered by ascending priority,
	// ties broken by ascending id, so consumers can act on the first match
	ListEnabled(ctx context.Context) ([]domain.ApprovalPolicy, error)
	Update(ctx context.Context, policy domain.ApprovalPolicy) error
	// Delete is idempotent; deleting a missing id is not an error
	Delete(ctx context.Context, id string) error
}
