package domain

import "time"

// ResetPeriod determines the window after which a budget is expected
// to be reset by its consumer
type ResetPeriod string

const (
	ResetPerSession ResetPeriod = "session"
	ResetDaily      ResetPeriod = "day"
	ResetWeekly     ResetPeriod = "week"
	ResetMonthly    ResetPeriod = "month"
)

// Valid reports whether p is a known reset period
func (p ResetPeriod) Valid() bool {
	switch p {
	case ResetPerSession, ResetDaily, ResetWeekly, ResetMonthly:
		return true
	}
	return false
}

// BudgetRecord is a per-scope spend ledger entry. The scope key is the
// (ProjectPath, SessionID) pair; at most one record exists per key.
// SpentUSD only decreases through an explicit reset.
type BudgetRecord struct {
	CreatedAt        time.Time
	HardStopEnabled  bool
	ID               string
	LastReset        time.Time
	LimitUSD         float64
	ProjectPath      *string
	ResetPeriod      ResetPeriod
	SessionID        *string
	SpentUSD         float64
	UpdatedAt        time.Time
	WarningThreshold float64
}

// OverWarning reports whether spend crossed the warning threshold
func (b *BudgetRecord) OverWarning() bool {
	return b.SpentUSD >= b.LimitUSD*b.WarningThreshold
}

// OverLimit reports whether spend reached the hard limit
func (b *BudgetRecord) OverLimit() bool {
	return b.SpentUSD >= b.LimitUSD
}

// ShouldHardStop reports whether the consumer must refuse further
// automated actions on this scope
func (b *BudgetRecord) ShouldHardStop() bool {
	return b.OverLimit() && b.HardStopEnabled
}

// NeedsReset reports whether LastReset predates the current reset window.
// Invoking the actual reset is the dispatcher's responsibility.
func (b *BudgetRecord) NeedsReset(now time.Time) bool {
	return b.LastReset.Before(ResetWindowStart(b.ResetPeriod, now))
}

// Validate checks the structural invariants of a budget record
func (b *BudgetRecord) Validate() error {
	verr := &ValidationError{}

	if b.LimitUSD <= 0 {
		verr.Add("limitUsd", "limit must be greater than zero")
	}
	if b.SpentUSD < 0 {
		verr.Add("spentUsd", "spent cannot be negative")
	}
	if b.WarningThreshold <= 0 || b.WarningThreshold > 1 {
		verr.Add("warningThreshold", "warning threshold must be in (0, 1]")
	}
	if !b.ResetPeriod.Valid() {
		verr.Add("resetPeriod", "reset period must be one of session, day, week, month")
	}

	return verr.OrNil()
}

// ResetWindowStart returns the start of the current reset window in UTC.
// Session-scoped budgets never expire on a calendar boundary, so their
// window start is the zero time. Weeks start on Monday.
func ResetWindowStart(period ResetPeriod, now time.Time) time.Time {
	now = now.UTC()
	switch period {
	case ResetDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case ResetWeekly:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		monday := now.AddDate(0, 0, -daysSinceMonday)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
	case ResetMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}
	}
}
