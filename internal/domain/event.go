package domain

import "time"

// Synthetic event types recorded in the hook event log alongside the
// lifecycle types. The log accepts this extended set; the hook registry
// only accepts the lifecycle types.
const (
	EventHookTest       = "hook-test"
	EventBudgetWarning  = "budget-warning"
	EventBudgetStop     = "budget-stop"
	EventPolicyDecision = "policy-decision"
)

// Event outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeTimeout = "timeout"
	OutcomeBlocked = "blocked"
)

// HookEventRecord is one append-only entry in the hook event log
type HookEventRecord struct {
	DurationMs int64
	EventType  string
	ID         string
	Metadata   string
	Outcome    string
	SessionID  string
	Timestamp  time.Time
}

// EventStats aggregates event counts for reporting
type EventStats struct {
	ByOutcome map[string]int64
	ByType    map[string]int64
	Total     int64
}
