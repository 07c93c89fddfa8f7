package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/logging"
	"github.com/renato0307/gancho/internal/ports"
)

// PolicyService is CRUD over approval policies plus the priority-ordered
// listing consumers evaluate in order.
type PolicyService struct {
	policies ports.PolicyRepository
}

// NewPolicyService creates a new PolicyService
func NewPolicyService(policies ports.PolicyRepository) *PolicyService {
	return &PolicyService{policies: policies}
}

// Create validates and stores a new approval policy
func (s *PolicyService) Create(ctx context.Context, policy domain.ApprovalPolicy) (*domain.ApprovalPolicy, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	policy.ID = uuid.New().String()
	policy.CreatedAt = now
	policy.UpdatedAt = now

	if err := s.policies.Create(ctx, policy); err != nil {
		return nil, err
	}

	logging.Logger.Info("Approval policy created",
		"id", policy.ID,
		"name", policy.Name,
		"action", policy.Action,
		"priority", policy.Priority)
	return &policy, nil
}

// Get returns a policy by id
func (s *PolicyService) Get(ctx context.Context, id string) (*domain.ApprovalPolicy, error) {
	return s.policies.Get(ctx, id)
}

// List returns all policies ordered by priority
func (s *PolicyService) List(ctx context.Context) ([]domain.ApprovalPolicy, error) {
	return s.policies.List(ctx)
}

// ListEnabled returns enabled policies in evaluation order (ascending
// priority, ties by ascending id)
func (s *PolicyService) ListEnabled(ctx context.Context) ([]domain.ApprovalPolicy, error) {
	return s.policies.ListEnabled(ctx)
}

// PolicyPatch is a partial update to a policy. Nil fields retain prior
// values; SetConditions distinguishes clearing conditions from leaving
// them untouched.
type PolicyPatch struct {
	Action        *domain.PolicyAction
	Conditions    *string
	Enabled       *bool
	Matcher       *string
	Name          *string
	Priority      *int
	SetConditions bool
}

// Update merges a partial patch into the stored policy. Returns
// ErrPolicyNotFound for a missing id.
func (s *PolicyService) Update(ctx context.Context, id string, patch PolicyPatch) (*domain.ApprovalPolicy, error) {
	policy, err := s.policies.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		policy.Name = *patch.Name
	}
	if patch.Matcher != nil {
		policy.Matcher = *patch.Matcher
	}
	if patch.Action != nil {
		policy.Action = *patch.Action
	}
	if patch.Priority != nil {
		policy.Priority = *patch.Priority
	}
	if patch.SetConditions {
		policy.Conditions = patch.Conditions
	}
	if patch.Enabled != nil {
		policy.Enabled = *patch.Enabled
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	policy.UpdatedAt = time.Now().UTC()
	if err := s.policies.Update(ctx, *policy); err != nil {
		return nil, err
	}

	logging.Logger.Info("Approval policy updated", "id", policy.ID, "name", policy.Name)
	return policy, nil
}

// Delete removes a policy by id. Deleting a missing id is not an error.
func (s *PolicyService) Delete(ctx context.Context, id string) error {
	if err := s.policies.Delete(ctx, id); err != nil {
		return err
	}
	logging.Logger.Info("Approval policy deleted", "id", id)
	return nil
}

// Decide evaluates the enabled policies in order against a tool/command
// identifier and invocation attributes, returning the first match's action
// and the matching policy. Falls back to the default action (ask) when
// nothing matches. This is dispatcher support; the store itself only
// guarantees CRUD correctness and ordering.
func (s *PolicyService) Decide(ctx context.Context, identifier string, attrs map[string]string) (domain.PolicyAction, *domain.ApprovalPolicy, error) {
	policies, err := s.policies.ListEnabled(ctx)
	if err != nil {
		return domain.DefaultPolicyAction, nil, err
	}

	for i := range policies {
		p := &policies[i]
		if !p.Matches(identifier) {
			continue
		}

		conditions := ""
		if p.Conditions != nil {
			conditions = *p.Conditions
		}
		ok, err := domain.EvaluateConditions(conditions, attrs)
		if err != nil {
			// A malformed predicate never auto-allows; skip the policy
			logging.Logger.Warn("Skipping policy with invalid conditions",
				"id", p.ID, "error", err)
			continue
		}
		if !ok {
			continue
		}

		logging.Logger.Debug("Policy matched",
			"id", p.ID,
			"name", p.Name,
			"action", p.Action,
			"identifier", identifier)
		return p.Action, p, nil
	}

	return domain.DefaultPolicyAction, nil, nil
}
