package timesheet

import "errors"

var (
	// ErrEntryNotFound indicates an index outside the ledger.
	ErrEntryNotFound = errors.New("timesheet entry not found")
	// ErrInvalidEntry indicates a draft that cannot be saved.
	ErrInvalidEntry = errors.New("invalid timesheet entry")
)
