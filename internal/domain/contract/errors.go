package contract

import "errors"

var (
	// ErrInvalidInput indicates a party update with out-of-range values.
	ErrInvalidInput = errors.New("invalid contract input")
	// ErrUnknownParty indicates a party selector other than founder or contributor.
	ErrUnknownParty = errors.New("unknown party")
)
