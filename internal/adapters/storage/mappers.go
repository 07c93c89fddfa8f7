package storage

import (
	"github.com/renato0307/gancho/internal/domain"
)

// hookModelToDomain converts a HookModel (GORM) to domain.HookConfig
func hookModelToDomain(m HookModel) domain.HookConfig {
	var lastResult *domain.HookResult
	if m.LastResult != nil {
		r := domain.HookResult(*m.LastResult)
		lastResult = &r
	}

	return domain.HookConfig{
		Command:        m.Command,
		CreatedAt:      m.CreatedAt,
		Enabled:        m.Enabled,
		EventType:      domain.HookEventType(m.EventType),
		ExecutionCount: m.ExecutionCount,
		HookType:       domain.HookType(m.HookType),
		ID:             m.ID,
		LastExecuted:   m.LastExecuted,
		LastResult:     lastResult,
		Matcher:        m.Matcher,
		Name:           m.Name,
		Prompt:         m.Prompt,
		ProjectPath:    m.ProjectPath,
		Scope:          domain.HookScope(m.Scope),
		TimeoutMs:      m.TimeoutMs,
		UpdatedAt:      m.UpdatedAt,
	}
}

// domainToHookModel converts a domain.HookConfig to HookModel (GORM)
func domainToHookModel(h domain.HookConfig) HookModel {
	var lastResult *string
	if h.LastResult != nil {
		r := string(*h.LastResult)
		lastResult = &r
	}

	return HookModel{
		Command:        h.Command,
		Enabled:        h.Enabled,
		EventType:      string(h.EventType),
		ExecutionCount: h.ExecutionCount,
		HookType:       string(h.HookType),
		ID:             h.ID,
		LastExecuted:   h.LastExecuted,
		LastResult:     lastResult,
		Matcher:        h.Matcher,
		Name:           h.Name,
		Prompt:         h.Prompt,
		ProjectPath:    h.ProjectPath,
		Scope:          string(h.Scope),
		TimeoutMs:      h.TimeoutMs,
	}
}

// budgetModelToDomain converts a BudgetModel (GORM) to domain.BudgetRecord
func budgetModelToDomain(m BudgetModel) domain.BudgetRecord {
	return domain.BudgetRecord{
		CreatedAt:        m.CreatedAt,
		HardStopEnabled:  m.HardStopEnabled,
		ID:               m.ID,
		LastReset:        m.LastReset,
		LimitUSD:         m.LimitUSD,
		ProjectPath:      m.ProjectPath,
		ResetPeriod:      domain.ResetPeriod(m.ResetPeriod),
		SessionID:        m.SessionID,
		SpentUSD:         m.SpentUSD,
		UpdatedAt:        m.UpdatedAt,
		WarningThreshold: m.WarningThreshold,
	}
}

// domainToBudgetModel converts a domain.BudgetRecord to BudgetModel (GORM)
func domainToBudgetModel(b domain.BudgetRecord) BudgetModel {
	return BudgetModel{
		HardStopEnabled:  b.HardStopEnabled,
		ID:               b.ID,
		LastReset:        b.LastReset,
		LimitUSD:         b.LimitUSD,
		ProjectPath:      b.ProjectPath,
		ResetPeriod:      string(b.ResetPeriod),
		SessionID:        b.SessionID,
		SpentUSD:         b.SpentUSD,
		WarningThreshold: b.WarningThreshold,
	}
}

// policyModelToDomain converts a PolicyModel (GORM) to domain.ApprovalPolicy
func policyModelToDomain(m PolicyModel) domain.ApprovalPolicy {
	return domain.ApprovalPolicy{
		Action:     domain.PolicyAction(m.Action),
		Conditions: m.Conditions,
		CreatedAt:  m.CreatedAt,
		Enabled:    m.Enabled,
		ID:         m.ID,
		Matcher:    m.Matcher,
		Name:       m.Name,
		Priority:   m.Priority,
		UpdatedAt:  m.UpdatedAt,
	}
}

// domainToPolicyModel converts a domain.ApprovalPolicy to PolicyModel (GORM)
func domainToPolicyModel(p domain.ApprovalPolicy) PolicyModel {
	return PolicyModel{
		Action:     string(p.Action),
		Conditions: p.Conditions,
		Enabled:    p.Enabled,
		ID:         p.ID,
		Matcher:    p.Matcher,
		Name:       p.Name,
		Priority:   p.Priority,
	}
}

// eventModelToDomain converts a HookEventModel (GORM) to domain.HookEventRecord
func eventModelToDomain(m HookEventModel) domain.HookEventRecord {
	return domain.HookEventRecord{
		DurationMs: m.DurationMs,
		EventType:  m.EventType,
		ID:         m.ID,
		Metadata:   m.Metadata,
		Outcome:    m.Outcome,
		SessionID:  m.SessionID,
		Timestamp:  m.Timestamp,
	}
}

// domainToEventModel converts a domain.HookEventRecord to HookEventModel (GORM)
func domainToEventModel(e domain.HookEventRecord) HookEventModel {
	return HookEventModel{
		DurationMs: e.DurationMs,
		EventType:  e.EventType,
		ID:         e.ID,
		Metadata:   e.Metadata,
		Outcome:    e.Outcome,
		SessionID:  e.SessionID,
		Timestamp:  e.Timestamp,
	}
}
