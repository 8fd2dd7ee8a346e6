package vesting

import "errors"

// ErrInvalidSchedule indicates a schedule whose curve is not well-defined.
var ErrInvalidSchedule = errors.New("invalid vesting schedule")
