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

// HookRepository implements ports.HookRepository using GORM
type HookRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.HookRepository = (*HookRepository)(nil)

// Create implements HookWriter.Create
func (r *HookRepository) Create(ctx context.Context, hook domain.HookConfig) error {
	model := domainToHookModel(hook)
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create hook: %w", err)
		}
		return nil
	}, 3)
}

// Get implements HookReader.Get
func (r *HookRepository) Get(ctx context.Context, id string) (*domain.HookConfig, error) {
	var model HookModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHookNotFound
		}
		return nil, err
	}

	hook := hookModelToDomain(model)
	return &hook, nil
}

// List implements HookReader.List
func (r *HookRepository) List(ctx context.Context) ([]domain.HookConfig, error) {
	var models []HookModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	hooks := make([]domain.HookConfig, len(models))
	for i, m := range models {
		hooks[i] = hookModelToDomain(m)
	}
	return hooks, nil
}

// ListByEventType implements HookReader.ListByEventType
func (r *HookRepository) ListByEventType(ctx context.Context, eventType domain.HookEventType, projectPath string) ([]domain.HookConfig, error) {
	var models []HookModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("event_type = ? AND enabled = ?", string(eventType), true).
			Where("scope = ? OR project_path = ?", string(domain.ScopeUser), projectPath).
			Order("created_at ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	hooks := make([]domain.HookConfig, len(models))
	for i, m := range models {
		hooks[i] = hookModelToDomain(m)
	}
	return hooks, nil
}

// Update implements HookWriter.Update
func (r *HookRepository) Update(ctx context.Context, hook domain.HookConfig) error {
	model := domainToHookModel(hook)
	return withRetry(func() error {
		result := r.db.WithContext(ctx).
			Model(&HookModel{}).
			Where("id = ?", hook.ID).
			Select("*").
			Omit("id", "created_at").
			Updates(model)
		if result.Error != nil {
			return fmt.Errorf("failed to update hook: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrHookNotFound
		}
		return nil
	}, 3)
}

// Delete implements HookWriter.Delete. Deleting a missing id is a no-op.
func (r *HookRepository) Delete(ctx context.Context, id string) error {
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&HookModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete hook: %w", err)
		}
		return nil
	}, 3)
}

// RecordExecution implements HookWriter.RecordExecution
func (r *HookRepository) RecordExecution(ctx context.Context, id string, result domain.HookResult, at time.Time) error {
	return withRetry(func() error {
		res := r.db.WithContext(ctx).
			Model(&HookModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"execution_count": gorm.Expr("execution_count + 1"),
				"last_executed":   at,
				"last_result":     string(result),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to record execution: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrHookNotFound
		}
		return nil
	}, 3)
}
