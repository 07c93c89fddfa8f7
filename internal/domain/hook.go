package domain

import "time"

// HookEventType identifies a lifecycle event a hook can fire on
type HookEventType string

const (
	EventPreToolUse   HookEventType = "PreToolUse"
	EventPostToolUse  HookEventType = "PostToolUse"
	EventSessionStart HookEventType = "SessionStart"
	EventSessionEnd   HookEventType = "SessionEnd"
	EventNotification HookEventType = "Notification"
	EventStop         HookEventType = "Stop"
)

// LifecycleEventTypes lists the events hooks can be registered for
var LifecycleEventTypes = []HookEventType{
	EventPreToolUse,
	EventPostToolUse,
	EventSessionStart,
	EventSessionEnd,
	EventNotification,
	EventStop,
}

// Valid reports whether t is a known lifecycle event type
func (t HookEventType) Valid() bool {
	for _, known := range LifecycleEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HookType distinguishes shell-command hooks from prompt hooks
type HookType string

const (
	HookTypeCommand HookType = "command"
	HookTypePrompt  HookType = "prompt"
)

// HookScope determines whether a hook applies everywhere or to one project
type HookScope string

const (
	ScopeUser    HookScope = "user"
	ScopeProject HookScope = "project"
)

// HookResult is the outcome of the most recent real (non-test) firing
type HookResult string

const (
	ResultSuccess HookResult = "success"
	ResultFailure HookResult = "failure"
	ResultTimeout HookResult = "timeout"
)

// Timeout bounds for hook commands, in milliseconds
const (
	DefaultHookTimeoutMs = 60000
	MaxHookTimeoutMs     = 600000
)

// HookConfig is a user-authored automation hook (domain entity)
type HookConfig struct {
	Command        string
	CreatedAt      time.Time
	Enabled        bool
	EventType      HookEventType
	ExecutionCount int
	HookType       HookType
	ID             string
	LastExecuted   *time.Time
	LastResult     *HookResult
	Matcher        *string
	Name           string
	Prompt         string
	ProjectPath    *string
	Scope          HookScope
	TimeoutMs      int
	UpdatedAt      time.Time
}

// DeriveScope returns the scope implied by a project path. Scope is never
// trusted from caller input when the project path changes.
func DeriveScope(projectPath *string) HookScope {
	if projectPath != nil && *projectPath != "" {
		return ScopeProject
	}
	return ScopeUser
}

// Validate checks the structural invariants of a hook configuration:
// hookType determines which of command/prompt is required (they are
// mutually exclusive), and scope must correspond to projectPath nullability.
func (h *HookConfig) Validate() error {
	verr := &ValidationError{}

	if h.Name == "" {
		verr.Add("name", "name is required")
	}
	if !h.EventType.Valid() {
		verr.Add("eventType", "unknown event type")
	}

	switch h.HookType {
	case HookTypeCommand:
		if h.Command == "" {
			verr.Add("command", "command is required for command hooks")
		}
		if h.Prompt != "" {
			verr.Add("prompt", "prompt must be empty for command hooks")
		}
	case HookTypePrompt:
		if h.Prompt == "" {
			verr.Add("prompt", "prompt is required for prompt hooks")
		}
		if h.Command != "" {
			verr.Add("command", "command must be empty for prompt hooks")
		}
	default:
		verr.Add("hookType", "hook type must be 'command' or 'prompt'")
	}

	if h.TimeoutMs <= 0 {
		verr.Add("timeout", "timeout must be positive")
	} else if h.TimeoutMs > MaxHookTimeoutMs {
		verr.Add("timeout", "timeout exceeds maximum")
	}

	switch h.Scope {
	case ScopeProject:
		if h.ProjectPath == nil || *h.ProjectPath == "" {
			verr.Add("projectPath", "projectPath is required for project-scoped hooks")
		}
	case ScopeUser:
		if h.ProjectPath != nil && *h.ProjectPath != "" {
			verr.Add("projectPath", "projectPath must be empty for user-scoped hooks")
		}
	default:
		verr.Add("scope", "scope must be 'user' or 'project'")
	}

	return verr.OrNil()
}

// HookPatch is a partial update to a hook. Nil fields retain prior values.
// SetProjectPath distinguishes "clear the project path" from "leave it".
type HookPatch struct {
	Command        *string
	Enabled        *bool
	EventType      *HookEventType
	HookType       *HookType
	Matcher        *string
	Name           *string
	Prompt         *string
	ProjectPath    *string
	SetMatcher     bool
	SetProjectPath bool
	TimeoutMs      *int
}

// Apply merges the patch into the hook, field by field. When the patch
// changes the projectPath between nil and non-nil, the scope is re-derived
// rather than taken from the caller.
func (p HookPatch) Apply(h *HookConfig) {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.EventType != nil {
		h.EventType = *p.EventType
	}
	if p.HookType != nil {
		h.HookType = *p.HookType
	}
	if p.Command != nil {
		h.Command = *p.Command
	}
	if p.Prompt != nil {
		h.Prompt = *p.Prompt
	}
	if p.SetMatcher {
		h.Matcher = p.Matcher
	}
	if p.TimeoutMs != nil {
		h.TimeoutMs = *p.TimeoutMs
	}
	if p.Enabled != nil {
		h.Enabled = *p.Enabled
	}
	if p.SetProjectPath {
		h.ProjectPath = p.ProjectPath
		h.Scope = DeriveScope(p.ProjectPath)
	}
}
