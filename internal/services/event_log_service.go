package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/logging"
	"github.com/renato0307/gancho/internal/ports"
)

// Query limits for the event log
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 500
)

// EventLogService is the append-only hook event log
type EventLogService struct {
	events ports.EventLogRepository
}

// NewEventLogService creates a new EventLogService
func NewEventLogService(events ports.EventLogRepository) *EventLogService {
	return &EventLogService{events: events}
}

// Record appends one event. A zero timestamp defaults to now.
func (s *EventLogService) Record(ctx context.Context, eventType, sessionID string, timestamp time.Time, outcome, metadata string, duration time.Duration) error {
	if eventType == "" {
		verr := &domain.ValidationError{}
		return verr.Add("eventType", "event type is required")
	}
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	record := domain.HookEventRecord{
		DurationMs: duration.Milliseconds(),
		EventType:  eventType,
		ID:         uuid.New().String(),
		Metadata:   metadata,
		Outcome:    outcome,
		SessionID:  sessionID,
		Timestamp:  timestamp,
	}
	return s.events.Append(ctx, record)
}

// clampLimit bounds a caller-provided limit
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultEventLimit
	}
	if limit > MaxEventLimit {
		return MaxEventLimit
	}
	return limit
}

// Recent returns the most recent events, newest first
func (s *EventLogService) Recent(ctx context.Context, limit int) ([]domain.HookEventRecord, error) {
	return s.events.Recent(ctx, clampLimit(limit))
}

// BySession returns events for one session, newest first
func (s *EventLogService) BySession(ctx context.Context, sessionID string, limit int) ([]domain.HookEventRecord, error) {
	if sessionID == "" {
		verr := &domain.ValidationError{}
		return nil, verr.Add("sessionId", "session id is required")
	}
	return s.events.BySession(ctx, sessionID, clampLimit(limit))
}

// ByType returns events of one (extended) event type, newest first
func (s *EventLogService) ByType(ctx context.Context, eventType string, limit int) ([]domain.HookEventRecord, error) {
	if eventType == "" {
		verr := &domain.ValidationError{}
		return nil, verr.Add("eventType", "event type is required")
	}
	return s.events.ByType(ctx, eventType, clampLimit(limit))
}

// Stats returns aggregate counts by type and outcome
func (s *EventLogService) Stats(ctx context.Context) (*domain.EventStats, error) {
	return s.events.Stats(ctx)
}

// Cleanup deletes events older than maxAgeHours and returns the count
// removed. This is the only deletion path for the log.
func (s *EventLogService) Cleanup(ctx context.Context, maxAgeHours int) (int64, error) {
	if maxAgeHours <= 0 {
		verr := &domain.ValidationError{}
		return 0, verr.Add("maxAgeHours", "max age must be positive")
	}

	cutoff := time.Now().UTC().Add(-time.Duration(maxAgeHours) * time.Hour)
	removed, err := s.events.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	logging.Logger.Info("Hook events cleaned up",
		"max_age_hours", maxAgeHours,
		"removed", removed)
	return removed, nil
}
