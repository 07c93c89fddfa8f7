package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrHookNotFound   = errors.New("hook not found")
	ErrPolicyNotFound = errors.New("approval policy not found")
)

// FieldError describes a single structural validation failure
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError is a structured, machine-readable validation failure.
// It is always produced before any side effect takes place.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Path, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error and returns the receiver for chaining
func (e *ValidationError) Add(path, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Path: path, Message: message})
	return e
}

// OrNil returns nil when no field errors were collected
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
