package api

import (
	"errors"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/logging"
)

// Error codes carried by failure responses
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Response is the uniform envelope every handler operation returns.
// Success responses carry Data; failure responses carry Error, Code and,
// for validation failures, per-field Details.
type Response struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Code    string              `json:"code,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

func ok(data any) Response {
	return Response{Success: true, Data: data}
}

// fail maps a Go error onto the envelope. Validation errors keep their
// field details; known not-found sentinels map to NOT_FOUND; everything
// else is an internal error.
func fail(err error) Response {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return Response{
			Success: false,
			Error:   verr.Error(),
			Code:    CodeValidationError,
			Details: verr.Fields,
		}
	}

	if errors.Is(err, domain.ErrHookNotFound) ||
		errors.Is(err, domain.ErrBudgetNotFound) ||
		errors.Is(err, domain.ErrPolicyNotFound) {
		return Response{Success: false, Error: err.Error(), Code: CodeNotFound}
	}

	logging.Logger.Error("Request failed", "error", err)
	return Response{Success: false, Error: err.Error(), Code: CodeInternalError}
}
