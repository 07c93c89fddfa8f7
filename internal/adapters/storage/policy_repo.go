package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/ports"
)

// PolicyRepository implements ports.PolicyRepository using GORM
type PolicyRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.PolicyRepository = (*PolicyRepository)(nil)

// Create implements PolicyRepository.Create
func (r *PolicyRepository) Create(ctx context.Context, policy domain.ApprovalPolicy) error {
	model := domainToPolicyModel(policy)
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create policy: %w", err)
		}
		return nil
	}, 3)
}

// Get implements PolicyRepository.Get
func (r *PolicyRepository) Get(ctx context.Context, id string) (*domain.ApprovalPolicy, error) {
	var model PolicyModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, err
	}

	policy := policyModelToDomain(model)
	return &policy, nil
}

// List implements PolicyRepository.List
func (r *PolicyRepository) List(ctx context.Context) ([]domain.ApprovalPolicy, error) {
	var models []PolicyModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("priority ASC, id ASC").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	policies := make([]domain.ApprovalPolicy, len(models))
	for i, m := range models {
		policies[i] = policyModelToDomain(m)
	}
	return policies, nil
}

// ListEnabled implements PolicyRepository.ListEnabled. Order is ascending
// priority with ties broken by ascending id, so consumers can act on the
// first matching policy.
func (r *PolicyRepository) ListEnabled(ctx context.Context) ([]domain.ApprovalPolicy, error) {
	var models []PolicyModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("enabled = ?", true).
			Order("priority ASC, id ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	policies := make([]domain.ApprovalPolicy, len(models))
	for i, m := range models {
		policies[i] = policyModelToDomain(m)
	}
	return policies, nil
}

// Update implements PolicyRepository.Update
func (r *PolicyRepository) Update(ctx context.Context, policy domain.ApprovalPolicy) error {
	model := domainToPolicyModel(policy)
	return withRetry(func() error {
		result := r.db.WithContext(ctx).
			Model(&PolicyModel{}).
			Where("id = ?", policy.ID).
			Select("*").
			Omit("id", "created_at").
			Updates(model)
		if result.Error != nil {
			return fmt.Errorf("failed to update policy: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrPolicyNotFound
		}
		return nil
	}, 3)
}

// Delete implements PolicyRepository.Delete. Deleting a missing id is a
// no-op.
func (r *PolicyRepository) Delete(ctx context.Context, id string) error {
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PolicyModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete policy: %w", err)
		}
		return nil
	}, 3)
}
