package api

import (
	"time"

	"github.com/renato0307/gancho/internal/domain"
)

// Hook is the wire representation of a hook configuration
type Hook struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	EventType      string  `json:"eventType"`
	HookType       string  `json:"hookType"`
	Command        string  `json:"command,omitempty"`
	Prompt         string  `json:"prompt,omitempty"`
	Matcher        *string `json:"matcher"`
	TimeoutMs      int     `json:"timeout"`
	Enabled        bool    `json:"enabled"`
	Scope          string  `json:"scope"`
	ProjectPath    *string `json:"projectPath"`
	ExecutionCount int     `json:"executionCount"`
	LastExecuted   *string `json:"lastExecuted"`
	LastResult     *string `json:"lastResult"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func hookToAPI(h domain.HookConfig) Hook {
	out := Hook{
		ID:             h.ID,
		Name:           h.Name,
		EventType:      string(h.EventType),
		HookType:       string(h.HookType),
		Command:        h.Command,
		Prompt:         h.Prompt,
		Matcher:        h.Matcher,
		TimeoutMs:      h.TimeoutMs,
		Enabled:        h.Enabled,
		Scope:          string(h.Scope),
		ProjectPath:    h.ProjectPath,
		ExecutionCount: h.ExecutionCount,
		CreatedAt:      h.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      h.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if h.LastExecuted != nil {
		s := h.LastExecuted.UTC().Format(time.RFC3339)
		out.LastExecuted = &s
	}
	if h.LastResult != nil {
		s := string(*h.LastResult)
		out.LastResult = &s
	}
	return out
}

func hooksToAPI(hooks []domain.HookConfig) []Hook {
	out := make([]Hook, len(hooks))
	for i, h := range hooks {
		out[i] = hookToAPI(h)
	}
	return out
}

// Budget is the wire representation of a budget record
type Budget struct {
	ID               string  `json:"id"`
	ProjectPath      *string `json:"projectPath"`
	SessionID        *string `json:"sessionId"`
	LimitUSD         float64 `json:"limitUsd"`
	SpentUSD         float64 `json:"spentUsd"`
	WarningThreshold float64 `json:"warningThreshold"`
	HardStopEnabled  bool    `json:"hardStopEnabled"`
	ResetPeriod      string  `json:"resetPeriod"`
	LastReset        string  `json:"lastReset"`
	OverWarning      bool    `json:"overWarning"`
	OverLimit        bool    `json:"overLimit"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

func budgetToAPI(b domain.BudgetRecord) Budget {
	return Budget{
		ID:               b.ID,
		ProjectPath:      b.ProjectPath,
		SessionID:        b.SessionID,
		LimitUSD:         b.LimitUSD,
		SpentUSD:         b.SpentUSD,
		WarningThreshold: b.WarningThreshold,
		HardStopEnabled:  b.HardStopEnabled,
		ResetPeriod:      string(b.ResetPeriod),
		LastReset:        b.LastReset.UTC().Format(time.RFC3339),
		OverWarning:      b.OverWarning(),
		OverLimit:        b.OverLimit(),
		CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Policy is the wire representation of an approval policy
type Policy struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Matcher    string  `json:"matcher"`
	Action     string  `json:"action"`
	Priority   int     `json:"priority"`
	Conditions *string `json:"conditions"`
	Enabled    bool    `json:"enabled"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func policyToAPI(p domain.ApprovalPolicy) Policy {
	return Policy{
		ID:         p.ID,
		Name:       p.Name,
		Matcher:    p.Matcher,
		Action:     string(p.Action),
		Priority:   p.Priority,
		Conditions: p.Conditions,
		Enabled:    p.Enabled,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func policiesToAPI(policies []domain.ApprovalPolicy) []Policy {
	out := make([]Policy, len(policies))
	for i, p := range policies {
		out[i] = policyToAPI(p)
	}
	return out
}

// Event is the wire representation of a hook event log entry
type Event struct {
	ID         string `json:"id"`
	EventType  string `json:"eventType"`
	SessionID  string `json:"sessionId,omitempty"`
	Timestamp  string `json:"timestamp"`
	Outcome    string `json:"outcome,omitempty"`
	DurationMs int64  `json:"durationMs"`
	Metadata   string `json:"metadata,omitempty"`
}

func eventToAPI(e domain.HookEventRecord) Event {
	return Event{
		ID:         e.ID,
		EventType:  e.EventType,
		SessionID:  e.SessionID,
		Timestamp:  e.Timestamp.UTC().Format(time.RFC3339),
		Outcome:    e.Outcome,
		DurationMs: e.DurationMs,
		Metadata:   e.Metadata,
	}
}

func eventsToAPI(events []domain.HookEventRecord) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = eventToAPI(e)
	}
	return out
}
