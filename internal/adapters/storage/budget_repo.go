package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/ports"
)

// BudgetRepository implements ports.BudgetRepository using GORM
type BudgetRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.BudgetRepository = (*BudgetRepository)(nil)

// scopeQuery applies the exact (project_path, session_id) scope key
func scopeQuery(q *gorm.DB, projectPath, sessionID *string) *gorm.DB {
	if projectPath == nil {
		q = q.Where("project_path IS NULL")
	} else {
		q = q.Where("project_path = ?", *projectPath)
	}
	if sessionID == nil {
		q = q.Where("session_id IS NULL")
	} else {
		q = q.Where("session_id = ?", *sessionID)
	}
	return q
}

// Create implements BudgetRepository.Create
func (r *BudgetRepository) Create(ctx context.Context, record domain.BudgetRecord) error {
	model := domainToBudgetModel(record)
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create budget: %w", err)
		}
		return nil
	}, 3)
}

// GetByID implements BudgetRepository.GetByID
func (r *BudgetRepository) GetByID(ctx context.Context, id string) (*domain.BudgetRecord, error) {
	var model BudgetModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}

	record := budgetModelToDomain(model)
	return &record, nil
}

// GetByScope implements BudgetRepository.GetByScope. Returns nil (not an
// error) when no record exists for the exact scope key; there is no
// project-to-global fallback here.
func (r *BudgetRepository) GetByScope(ctx context.Context, projectPath, sessionID *string) (*domain.BudgetRecord, error) {
	var model BudgetModel
	err := withRetry(func() error {
		return scopeQuery(r.db.WithContext(ctx), projectPath, sessionID).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record := budgetModelToDomain(model)
	return &record, nil
}

// List implements BudgetRepository.List
func (r *BudgetRepository) List(ctx context.Context) ([]domain.BudgetRecord, error) {
	var models []BudgetModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	records := make([]domain.BudgetRecord, len(models))
	for i, m := range models {
		records[i] = budgetModelToDomain(m)
	}
	return records, nil
}

// Update implements BudgetRepository.Update
func (r *BudgetRepository) Update(ctx context.Context, record domain.BudgetRecord) error {
	model := domainToBudgetModel(record)
	return withRetry(func() error {
		result := r.db.WithContext(ctx).
			Model(&BudgetModel{}).
			Where("id = ?", record.ID).
			Select("*").
			Omit("id", "created_at").
			Updates(model)
		if result.Error != nil {
			return fmt.Errorf("failed to update budget: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrBudgetNotFound
		}
		return nil
	}, 3)
}

// AddSpent implements BudgetRepository.AddSpent as a single atomic update
func (r *BudgetRepository) AddSpent(ctx context.Context, id string, delta float64) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).
			Model(&BudgetModel{}).
			Where("id = ?", id).
			Update("spent_usd", gorm.Expr("spent_usd + ?", delta))
		if result.Error != nil {
			return fmt.Errorf("failed to add spend: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrBudgetNotFound
		}
		return nil
	}, 3)
}

// Reset implements BudgetRepository.Reset
func (r *BudgetRepository) Reset(ctx context.Context, id string, at time.Time) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).
			Model(&BudgetModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"spent_usd":  0,
				"last_reset": at,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to reset budget: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrBudgetNotFound
		}
		return nil
	}, 3)
}
