package domain

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"
)

// PolicyAction is the decision an approval policy yields when it matches
type PolicyAction string

const (
	ActionAllow PolicyAction = "allow"
	ActionDeny  PolicyAction = "deny"
	ActionAsk   PolicyAction = "ask"
)

// DefaultPolicyAction applies when no enabled policy matches
const DefaultPolicyAction = ActionAsk

// Valid reports whether a is a known policy action
func (a PolicyAction) Valid() bool {
	switch a {
	case ActionAllow, ActionDeny, ActionAsk:
		return true
	}
	return false
}

// ApprovalPolicy is a priority-ordered rule deciding whether a tool or
// command invocation is auto-allowed, auto-denied, or needs confirmation.
// Lower priority evaluates first; the first matching policy wins.
type ApprovalPolicy struct {
	Action     PolicyAction
	Conditions *string
	CreatedAt  time.Time
	Enabled    bool
	ID         string
	Matcher    string
	Name       string
	Priority   int
	UpdatedAt  time.Time
}

// Validate checks the structural invariants of an approval policy
func (p *ApprovalPolicy) Validate() error {
	verr := &ValidationError{}

	if p.Name == "" {
		verr.Add("name", "name is required")
	}
	if p.Matcher == "" {
		verr.Add("matcher", "matcher is required")
	}
	if !p.Action.Valid() {
		verr.Add("action", "action must be one of allow, deny, ask")
	}
	if p.Conditions != nil && *p.Conditions != "" {
		if _, err := ParseConditions(*p.Conditions); err != nil {
			verr.Add("conditions", err.Error())
		}
	}

	return verr.OrNil()
}

// Matches reports whether the policy matcher matches a tool or command
// identifier. Matchers are glob patterns (path.Match syntax); a matcher
// with no metacharacters is an exact comparison.
func (p *ApprovalPolicy) Matches(identifier string) bool {
	if !strings.ContainsAny(p.Matcher, "*?[") {
		return p.Matcher == identifier
	}
	ok, err := path.Match(p.Matcher, identifier)
	if err != nil {
		return false
	}
	return ok
}

// Condition is one clause of a policy's structured predicate. All
// conditions of a policy must hold (conjunction).
type Condition struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value string `json:"value"`
}

// ParseConditions decodes the opaque conditions JSON carried by a policy
func ParseConditions(conditionsJSON string) ([]Condition, error) {
	var conditions []Condition
	if err := json.Unmarshal([]byte(conditionsJSON), &conditions); err != nil {
		return nil, fmt.Errorf("invalid conditions: %w", err)
	}
	for i, c := range conditions {
		if c.Field == "" {
			return nil, fmt.Errorf("invalid conditions: clause %d has no field", i)
		}
		switch c.Op {
		case "eq", "ne", "prefix", "contains":
		default:
			return nil, fmt.Errorf("invalid conditions: clause %d has unknown op %q", i, c.Op)
		}
	}
	return conditions, nil
}

// EvaluateConditions evaluates a policy's conditions against invocation
// attributes. An empty or absent predicate always holds. The policy store
// never calls this; it exists for consumers that opt in.
func EvaluateConditions(conditionsJSON string, attrs map[string]string) (bool, error) {
	if conditionsJSON == "" {
		return true, nil
	}

	conditions, err := ParseConditions(conditionsJSON)
	if err != nil {
		return false, err
	}

	for _, c := range conditions {
		value, ok := attrs[c.Field]
		switch c.Op {
		case "eq":
			if !ok || value != c.Value {
				return false, nil
			}
		case "ne":
			if ok && value == c.Value {
				return false, nil
			}
		case "prefix":
			if !ok || !strings.HasPrefix(value, c.Value) {
				return false, nil
			}
		case "contains":
			if !ok || !strings.Contains(value, c.Value) {
				return false, nil
			}
		}
	}

	return true, nil
}
