package api

import (
	"context"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/services"
)

// Handler is the request boundary over the services. Every operation
// returns a Response envelope and never panics or leaks a raw error.
type Handler struct {
	hooks    *services.HookService
	budgets  *services.BudgetService
	policies *services.PolicyService
	events   *services.EventLogService
	runner   *services.TestRunner
}

// NewHandler creates a Handler over the given services
func NewHandler(
	hooks *services.HookService,
	budgets *services.BudgetService,
	policies *services.PolicyService,
	events *services.EventLogService,
	runner *services.TestRunner,
) *Handler {
	return &Handler{
		hooks:    hooks,
		budgets:  budgets,
		policies: policies,
		events:   events,
		runner:   runner,
	}
}

// CreateHookRequest carries a new hook's fields
type CreateHookRequest struct {
	Name        string  `json:"name"`
	EventType   string  `json:"eventType"`
	HookType    string  `json:"hookType"`
	Command     string  `json:"command,omitempty"`
	Prompt      string  `json:"prompt,omitempty"`
	Matcher     *string `json:"matcher,omitempty"`
	TimeoutMs   int     `json:"timeout,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
	ProjectPath *string `json:"projectPath,omitempty"`
}

// CreateHook registers a new hook. New hooks are enabled unless the
// request says otherwise.
func (h *Handler) CreateHook(ctx context.Context, req CreateHookRequest) Response {
	hook := domain.HookConfig{
		Name:        req.Name,
		EventType:   domain.HookEventType(req.EventType),
		HookType:    domain.HookType(req.HookType),
		Command:     req.Command,
		Prompt:      req.Prompt,
		Matcher:     req.Matcher,
		TimeoutMs:   req.TimeoutMs,
		Enabled:     true,
		ProjectPath: req.ProjectPath,
	}
	if req.Enabled != nil {
		hook.Enabled = *req.Enabled
	}

	created, err := h.hooks.Create(ctx, hook)
	if err != nil {
		return fail(err)
	}
	return ok(hookToAPI(*created))
}

// GetHook returns one hook by id
func (h *Handler) GetHook(ctx context.Context, id string) Response {
	hook, err := h.hooks.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	return ok(hookToAPI(*hook))
}

// ListHooks returns all registered hooks
func (h *Handler) ListHooks(ctx context.Context) Response {
	hooks, err := h.hooks.List(ctx)
	if err != nil {
		return fail(err)
	}
	return ok(hooksToAPI(hooks))
}

// UpdateHookRequest is a merge patch. Absent fields keep their stored
// values; SetMatcher/SetProjectPath distinguish clearing from leaving.
type UpdateHookRequest struct {
	Name           *string `json:"name,omitempty"`
	EventType      *string `json:"eventType,omitempty"`
	HookType       *string `json:"hookType,omitempty"`
	Command        *string `json:"command,omitempty"`
	Prompt         *string `json:"prompt,omitempty"`
	Matcher        *string `json:"matcher,omitempty"`
	SetMatcher     bool    `json:"-"`
	TimeoutMs      *int    `json:"timeout,omitempty"`
	Enabled        *bool   `json:"enabled,omitempty"`
	ProjectPath    *string `json:"projectPath,omitempty"`
	SetProjectPath bool    `json:"-"`
}

// UpdateHook applies a merge patch to a stored hook
func (h *Handler) UpdateHook(ctx context.Context, id string, req UpdateHookRequest) Response {
	patch := domain.HookPatch{
		Name:           req.Name,
		Command:        req.Command,
		Prompt:         req.Prompt,
		Matcher:        req.Matcher,
		SetMatcher:     req.SetMatcher,
		TimeoutMs:      req.TimeoutMs,
		Enabled:        req.Enabled,
		ProjectPath:    req.ProjectPath,
		SetProjectPath: req.SetProjectPath,
	}
	if req.EventType != nil {
		et := domain.HookEventType(*req.EventType)
		patch.EventType = &et
	}
	if req.HookType != nil {
		ht := domain.HookType(*req.HookType)
		patch.HookType = &ht
	}

	updated, err := h.hooks.Update(ctx, id, patch)
	if err != nil {
		return fail(err)
	}
	return ok(hookToAPI(*updated))
}

// DeleteHook removes a hook. Deleting a missing id still succeeds.
func (h *Handler) DeleteHook(ctx context.Context, id string) Response {
	if err := h.hooks.Delete(ctx, id); err != nil {
		return fail(err)
	}
	return ok(map[string]string{"id": id})
}

// HooksForEvent returns the enabled hooks that apply when eventType fires
// in the given project
func (h *Handler) HooksForEvent(ctx context.Context, eventType, projectPath string) Response {
	hooks, err := h.hooks.GetHooksByEventType(ctx, domain.HookEventType(eventType), projectPath)
	if err != nil {
		return fail(err)
	}
	return ok(hooksToAPI(hooks))
}

// TestHook runs a candidate command through the sandboxed test runner.
// The run's outcome, including failures and timeouts, is data in the
// success envelope; only the envelope itself never fails here.
func (h *Handler) TestHook(ctx context.Context, command string, input any) Response {
	return ok(h.runner.Run(ctx, command, input))
}

// SetBudgetRequest carries budget limits for one scope key
type SetBudgetRequest struct {
	ProjectPath      *string `json:"projectPath,omitempty"`
	SessionID        *string `json:"sessionId,omitempty"`
	LimitUSD         float64 `json:"limitUsd"`
	WarningThreshold float64 `json:"warningThreshold,omitempty"`
	HardStopEnabled  bool    `json:"hardStopEnabled,omitempty"`
	ResetPeriod      string  `json:"resetPeriod,omitempty"`
}

// SetBudget creates or overwrites the budget for a scope key
func (h *Handler) SetBudget(ctx context.Context, req SetBudgetRequest) Response {
	record, err := h.budgets.Upsert(ctx, domain.BudgetRecord{
		ProjectPath:      req.ProjectPath,
		SessionID:        req.SessionID,
		LimitUSD:         req.LimitUSD,
		WarningThreshold: req.WarningThreshold,
		HardStopEnabled:  req.HardStopEnabled,
		ResetPeriod:      domain.ResetPeriod(req.ResetPeriod),
	})
	if err != nil {
		return fail(err)
	}
	return ok(budgetToAPI(*record))
}

// GetBudget returns the budget for a scope key, or null data when none
// exists. Absence is not an error.
func (h *Handler) GetBudget(ctx context.Context, projectPath, sessionID *string) Response {
	record, err := h.budgets.GetForScope(ctx, projectPath, sessionID)
	if err != nil {
		return fail(err)
	}
	if record == nil {
		return ok(nil)
	}
	return ok(budgetToAPI(*record))
}

// ListBudgets returns all budget records
func (h *Handler) ListBudgets(ctx context.Context) Response {
	records, err := h.budgets.List(ctx)
	if err != nil {
		return fail(err)
	}
	out := make([]Budget, len(records))
	for i, b := range records {
		out[i] = budgetToAPI(b)
	}
	return ok(out)
}

// AddSpent increments a budget's accumulated spend
func (h *Handler) AddSpent(ctx context.Context, id string, additionalCost float64) Response {
	record, err := h.budgets.AddSpent(ctx, id, additionalCost)
	if err != nil {
		return fail(err)
	}
	return ok(budgetToAPI(*record))
}

// ResetBudget zeroes a budget's spend
func (h *Handler) ResetBudget(ctx context.Context, id string) Response {
	record, err := h.budgets.Reset(ctx, id)
	if err != nil {
		return fail(err)
	}
	return ok(budgetToAPI(*record))
}

// CreatePolicyRequest carries a new approval policy's fields
type CreatePolicyRequest struct {
	Name       string  `json:"name"`
	Matcher    string  `json:"matcher"`
	Action     string  `json:"action"`
	Priority   int     `json:"priority,omitempty"`
	Conditions *string `json:"conditions,omitempty"`
	Enabled    *bool   `json:"enabled,omitempty"`
}

// CreatePolicy stores a new approval policy, enabled by default
func (h *Handler) CreatePolicy(ctx context.Context, req CreatePolicyRequest) Response {
	policy := domain.ApprovalPolicy{
		Name:       req.Name,
		Matcher:    req.Matcher,
		Action:     domain.PolicyAction(req.Action),
		Priority:   req.Priority,
		Conditions: req.Conditions,
		Enabled:    true,
	}
	if req.Enabled != nil {
		policy.Enabled = *req.Enabled
	}

	created, err := h.policies.Create(ctx, policy)
	if err != nil {
		return fail(err)
	}
	return ok(policyToAPI(*created))
}

// GetPolicy returns one policy by id
func (h *Handler) GetPolicy(ctx context.Context, id string) Response {
	policy, err := h.policies.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	return ok(policyToAPI(*policy))
}

// ListPolicies returns all policies in evaluation order
func (h *Handler) ListPolicies(ctx context.Context) Response {
	policies, err := h.policies.List(ctx)
	if err != nil {
		return fail(err)
	}
	return ok(policiesToAPI(policies))
}

// UpdatePolicyRequest is a merge patch over a policy
type UpdatePolicyRequest struct {
	Name          *string `json:"name,omitempty"`
	Matcher       *string `json:"matcher,omitempty"`
	Action        *string `json:"action,omitempty"`
	Priority      *int    `json:"priority,omitempty"`
	Conditions    *string `json:"conditions,omitempty"`
	SetConditions bool    `json:"-"`
	Enabled       *bool   `json:"enabled,omitempty"`
}

// UpdatePolicy applies a merge patch to a stored policy
func (h *Handler) UpdatePolicy(ctx context.Context, id string, req UpdatePolicyRequest) Response {
	patch := services.PolicyPatch{
		Name:          req.Name,
		Matcher:       req.Matcher,
		Priority:      req.Priority,
		Conditions:    req.Conditions,
		SetConditions: req.SetConditions,
		Enabled:       req.Enabled,
	}
	if req.Action != nil {
		a := domain.PolicyAction(*req.Action)
		patch.Action = &a
	}

	updated, err := h.policies.Update(ctx, id, patch)
	if err != nil {
		return fail(err)
	}
	return ok(policyToAPI(*updated))
}

// DeletePolicy removes a policy. Deleting a missing id still succeeds.
func (h *Handler) DeletePolicy(ctx context.Context, id string) Response {
	if err := h.policies.Delete(ctx, id); err != nil {
		return fail(err)
	}
	return ok(map[string]string{"id": id})
}

// ListEnabledPolicies returns the enabled policies in evaluation order
// (ascending priority, ties by ascending id)
func (h *Handler) ListEnabledPolicies(ctx context.Context) Response {
	policies, err := h.policies.ListEnabled(ctx)
	if err != nil {
		return fail(err)
	}
	return ok(policiesToAPI(policies))
}

// PolicyDecision is the result of evaluating the policy chain
type PolicyDecision struct {
	Action string  `json:"action"`
	Policy *Policy `json:"policy,omitempty"`
}

// Decide evaluates the enabled policies against an identifier and
// invocation attributes
func (h *Handler) Decide(ctx context.Context, identifier string, attrs map[string]string) Response {
	action, matched, err := h.policies.Decide(ctx, identifier, attrs)
	if err != nil {
		return fail(err)
	}
	decision := PolicyDecision{Action: string(action)}
	if matched != nil {
		p := policyToAPI(*matched)
		decision.Policy = &p
	}
	return ok(decision)
}

// RecentEvents returns recent hook events, newest first
func (h *Handler) RecentEvents(ctx context.Context, limit int) Response {
	events, err := h.events.Recent(ctx, limit)
	if err != nil {
		return fail(err)
	}
	return ok(eventsToAPI(events))
}

// EventsBySession returns a session's hook events, newest first
func (h *Handler) EventsBySession(ctx context.Context, sessionID string, limit int) Response {
	events, err := h.events.BySession(ctx, sessionID, limit)
	if err != nil {
		return fail(err)
	}
	return ok(eventsToAPI(events))
}

// EventsByType returns events of one (extended) event type, newest first
func (h *Handler) EventsByType(ctx context.Context, eventType string, limit int) Response {
	events, err := h.events.ByType(ctx, eventType, limit)
	if err != nil {
		return fail(err)
	}
	return ok(eventsToAPI(events))
}

// EventStats returns aggregate event counts
func (h *Handler) EventStats(ctx context.Context) Response {
	stats, err := h.events.Stats(ctx)
	if err != nil {
		return fail(err)
	}
	return ok(stats)
}

// CleanupEvents deletes events older than maxAgeHours
func (h *Handler) CleanupEvents(ctx context.Context, maxAgeHours int) Response {
	removed, err := h.events.Cleanup(ctx, maxAgeHours)
	if err != nil {
		return fail(err)
	}
	return ok(map[string]int64{"removed": removed})
}
