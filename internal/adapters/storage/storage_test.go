package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gancho/internal/domain"
)

// newTestDB opens a fresh database in a temp directory
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestHook(name string) domain.HookConfig {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.HookConfig{
		ID:        uuid.New().String(),
		Name:      name,
		EventType: domain.EventPreToolUse,
		HookType:  domain.HookTypeCommand,
		Command:   "echo hi",
		TimeoutMs: domain.DefaultHookTimeoutMs,
		Enabled:   true,
		Scope:     domain.ScopeUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestBudget() domain.BudgetRecord {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.BudgetRecord{
		ID:               uuid.New().String(),
		LimitUSD:         25,
		WarningThreshold: 0.8,
		ResetPeriod:      domain.ResetDaily,
		LastReset:        now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func newTestPolicy(name string, priority int) domain.ApprovalPolicy {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.ApprovalPolicy{
		ID:        uuid.New().String(),
		Name:      name,
		Matcher:   "Bash(git *",
		Action:    domain.ActionAllow,
		Priority:  priority,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestEvent(eventType, sessionID string, at time.Time) domain.HookEventRecord {
	return domain.HookEventRecord{
		ID:        uuid.New().String(),
		EventType: eventType,
		SessionID: sessionID,
		Timestamp: at,
		Outcome:   domain.OutcomeSuccess,
	}
}
