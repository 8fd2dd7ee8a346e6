package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/domain/timesheet"
	"github.com/rpggio/fcea/internal/domain/vesting"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, timesheet.ErrEntryNotFound):
		return &APIError{Code: "ENTRY_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_timesheet for valid indexes"}
	case errors.Is(err, timesheet.ErrInvalidEntry):
		return &APIError{Code: "INVALID_ENTRY", Message: err.Error(), RecoveryHint: "Provide a party and non-negative hours and rate"}
	case errors.Is(err, contract.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check the field ranges in fcea://docs/vesting"}
	case errors.Is(err, contract.ErrUnknownParty):
		return &APIError{Code: "UNKNOWN_PARTY", Message: err.Error(), RecoveryHint: "Use founder or contributor"}
	case errors.Is(err, vesting.ErrInvalidSchedule):
		return &APIError{Code: "INVALID_SCHEDULE", Message: err.Error(), RecoveryHint: "Cliff must be shorter than the vesting period"}
	default:
		return nil
	}
}

// toolError converts err into the error a tool handler returns.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
