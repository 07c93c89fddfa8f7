package ports

import (
	"context"
	"time"

	"github.com/renato0307/gancho/internal/domain"
)

// EventLogRepository is the append-only hook event log. DeleteOlderThan is
// the only deletion path.
type EventLogRepository interface {
	Append(ctx context.Context, record domain.HookEventRecord) error
	Recent(ctx context.Context, limit int) ([]domain.HookEventRecord, error)
	BySession(ctx context.Context, sessionID string, limit int) ([]domain.HookEventRecord, error)
	ByType(ctx context.Context, eventType string, limit int) ([]domain.HookEventRecord, error)
	Stats(ctx context.Context) (*domain.EventStats, error)
	// DeleteOlderThan removes records strictly older than cutoff and
	// returns the count removed
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
