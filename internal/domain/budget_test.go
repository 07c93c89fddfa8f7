package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validBudget() BudgetRecord {
	return BudgetRecord{
		ID:               "b1",
		LimitUSD:         10,
		WarningThreshold: 0.8,
		ResetPeriod:      ResetDaily,
		LastReset:        time.Now().UTC(),
	}
}

func TestBudgetRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BudgetRecord)
		wantErr bool
	}{
		{"valid", func(b *BudgetRecord) {}, false},
		{"zero limit", func(b *BudgetRecord) { b.LimitUSD = 0 }, true},
		{"negative limit", func(b *BudgetRecord) { b.LimitUSD = -1 }, true},
		{"negative spent", func(b *BudgetRecord) { b.SpentUSD = -0.01 }, true},
		{"zero threshold", func(b *BudgetRecord) { b.WarningThreshold = 0 }, true},
		{"threshold of one", func(b *BudgetRecord) { b.WarningThreshold = 1 }, false},
		{"threshold above one", func(b *BudgetRecord) { b.WarningThreshold = 1.1 }, true},
		{"unknown period", func(b *BudgetRecord) { b.ResetPeriod = "quarter" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := validBudget()
			tt.mutate(&budget)
			err := budget.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBudgetRecord_Thresholds(t *testing.T) {
	budget := validBudget()
	budget.HardStopEnabled = true

	budget.SpentUSD = 7.99
	assert.False(t, budget.OverWarning())
	assert.False(t, budget.OverLimit())

	budget.SpentUSD = 8 // exactly limit * threshold
	assert.True(t, budget.OverWarning())
	assert.False(t, budget.OverLimit())

	budget.SpentUSD = 10
	assert.True(t, budget.OverLimit())
	assert.True(t, budget.ShouldHardStop())

	budget.HardStopEnabled = false
	assert.False(t, budget.ShouldHardStop())
}

func TestResetWindowStart_Daily(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), ResetWindowStart(ResetDaily, now))
}

func TestResetWindowStart_WeeklyStartsMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"sunday maps to previous monday",
			time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC), // Sunday
			time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday maps to itself",
			time.Date(2025, 6, 9, 23, 59, 0, 0, time.UTC),
			time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			"wednesday maps to monday",
			time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResetWindowStart(ResetWeekly, tt.now))
		})
	}
}

func TestResetWindowStart_Monthly(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ResetWindowStart(ResetMonthly, now))
}

func TestResetWindowStart_SessionNeverExpires(t *testing.T) {
	assert.True(t, ResetWindowStart(ResetPerSession, time.Now()).IsZero())
}

func TestBudgetRecord_NeedsReset(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC)

	budget := validBudget()
	budget.ResetPeriod = ResetDaily

	budget.LastReset = time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC)
	assert.False(t, budget.NeedsReset(now), "reset inside the current day")

	budget.LastReset = time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC)
	assert.True(t, budget.NeedsReset(now), "reset before midnight")

	budget.ResetPeriod = ResetPerSession
	budget.LastReset = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, budget.NeedsReset(now), "session budgets never expire")
}
