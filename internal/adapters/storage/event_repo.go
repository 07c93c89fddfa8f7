package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/ports"
)

// EventLogRepository implements ports.EventLogRepository using GORM
type EventLogRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.EventLogRepository = (*EventLogRepository)(nil)

// Append implements EventLogRepository.Append
func (r *EventLogRepository) Append(ctx context.Context, record domain.HookEventRecord) error {
	model := domainToEventModel(record)
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to append hook event: %w", err)
		}
		return nil
	}, 3)
}

// Recent implements EventLogRepository.Recent
func (r *EventLogRepository) Recent(ctx context.Context, limit int) ([]domain.HookEventRecord, error) {
	var models []HookEventModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Order("timestamp DESC").
			Limit(limit).
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}
	return eventModelsToDomain(models), nil
}

// BySession implements EventLogRepository.BySession
func (r *EventLogRepository) BySession(ctx context.Context, sessionID string, limit int) ([]domain.HookEventRecord, error) {
	var models []HookEventModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("session_id = ?", sessionID).
			Order("timestamp DESC").
			Limit(limit).
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}
	return eventModelsToDomain(models), nil
}

// ByType implements EventLogRepository.ByType
func (r *EventLogRepository) ByType(ctx context.Context, eventType string, limit int) ([]domain.HookEventRecord, error) {
	var models []HookEventModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("event_type = ?", eventType).
			Order("timestamp DESC").
			Limit(limit).
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}
	return eventModelsToDomain(models), nil
}

// countRow receives grouped count results
type countRow struct {
	Key   string
	Count int64
}

// Stats implements EventLogRepository.Stats
func (r *EventLogRepository) Stats(ctx context.Context) (*domain.EventStats, error) {
	stats := &domain.EventStats{}

	err := withRetry(func() error {
		var byType []countRow
		if err := r.db.WithContext(ctx).
			Model(&HookEventModel{}).
			Select("event_type AS key, COUNT(*) AS count").
			Group("event_type").
			Scan(&byType).Error; err != nil {
			return err
		}

		var byOutcome []countRow
		if err := r.db.WithContext(ctx).
			Model(&HookEventModel{}).
			Select("outcome AS key, COUNT(*) AS count").
			Group("outcome").
			Scan(&byOutcome).Error; err != nil {
			return err
		}

		stats.ByType = make(map[string]int64)
		stats.ByOutcome = make(map[string]int64)
		stats.Total = 0
		for _, row := range byType {
			stats.ByType[row.Key] = row.Count
			stats.Total += row.Count
		}
		for _, row := range byOutcome {
			stats.ByOutcome[row.Key] = row.Count
		}
		return nil
	}, 3)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// DeleteOlderThan implements EventLogRepository.DeleteOlderThan. This is
// the only deletion path for the event log.
func (r *EventLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := withRetry(func() error {
		result := r.db.WithContext(ctx).
			Where("timestamp < ?", cutoff).
			Delete(&HookEventModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to clean up hook events: %w", result.Error)
		}
		removed = result.RowsAffected
		return nil
	}, 3)
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func eventModelsToDomain(models []HookEventModel) []domain.HookEventRecord {
	records := make([]domain.HookEventRecord, len(models))
	for i, m := range models {
		records[i] = eventModelToDomain(m)
	}
	return records
}
