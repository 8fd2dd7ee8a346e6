package vesting

import (
	"fmt"
	"math"
)

// DaysPerYear converts a vesting period in years into calendar days.
const DaysPerYear = 365

const (
	// MaxVestingPeriodYears bounds the vesting period any party can hold.
	MaxVestingPeriodYears = 100
	// MaxCurvePoints bounds the samples Curve returns, horizon included.
	MaxCurvePoints = 2000
)

// VestedPercentage returns the share of totalEquity vested after daysWorked.
//
// Nothing vests up to and including the cliff day. Past the cliff the grant
// accrues as ((daysWorked-cliffDays)/(totalVestingDays-cliffDays))^exponent,
// and the result is capped at totalEquity from totalVestingDays onward.
func VestedPercentage(totalEquity, daysWorked, totalVestingDays, cliffDays, exponent float64) float64 {
	if daysWorked < 0 {
		daysWorked = 0
	}
	if daysWorked >= totalVestingDays {
		return totalEquity
	}
	if daysWorked <= cliffDays {
		return 0
	}
	span := totalVestingDays - cliffDays
	if span <= 0 || exponent <= 0 {
		return 0
	}
	vested := totalEquity * math.Pow((daysWorked-cliffDays)/span, exponent)
	return math.Min(vested, totalEquity)
}

// Schedule is a contributor's vesting configuration.
type Schedule struct {
	TotalEquity        float64 `json:"total_equity"`
	VestingPeriodYears float64 `json:"vesting_period_years"`
	CliffDays          int     `json:"cliff_days"`
	Exponent           float64 `json:"exponent"`
}

// TotalDays is the vesting horizon in days.
func (s Schedule) TotalDays() int {
	return int(math.Round(s.VestingPeriodYears * DaysPerYear))
}

// Validate reports whether the schedule yields a well-defined curve.
func (s Schedule) Validate() error {
	switch {
	case s.TotalEquity <= 0 || s.TotalEquity > 100:
		return fmt.Errorf("%w: total equity must be in (0,100], got %g", ErrInvalidSchedule, s.TotalEquity)
	case s.VestingPeriodYears <= 0 || s.VestingPeriodYears > MaxVestingPeriodYears:
		return fmt.Errorf("%w: vesting period must be in (0,%d] years, got %g", ErrInvalidSchedule, MaxVestingPeriodYears, s.VestingPeriodYears)
	case s.CliffDays < 0:
		return fmt.Errorf("%w: cliff days must not be negative, got %d", ErrInvalidSchedule, s.CliffDays)
	case s.CliffDays >= s.TotalDays():
		return fmt.Errorf("%w: cliff (%d days) must end before the vesting horizon (%d days)", ErrInvalidSchedule, s.CliffDays, s.TotalDays())
	case s.Exponent <= 0:
		return fmt.Errorf("%w: exponent must be positive, got %g", ErrInvalidSchedule, s.Exponent)
	}
	return nil
}

// At returns the vested percentage after the given number of days.
func (s Schedule) At(days float64) float64 {
	return VestedPercentage(s.TotalEquity, days, float64(s.TotalDays()), float64(s.CliffDays), s.Exponent)
}

// Point is one sample of a vesting curve.
type Point struct {
	Day     int     `json:"day"`
	Percent float64 `json:"percent"`
}

// Curve samples the schedule every step days from day 0 through the horizon.
// The final day is always included. Step is widened when needed so at most
// MaxCurvePoints samples are returned.
func (s Schedule) Curve(step int) []Point {
	if step <= 0 {
		step = 30
	}
	total := s.TotalDays()
	if total < 0 {
		total = 0
	}
	if minStep := (total + MaxCurvePoints - 2) / (MaxCurvePoints - 1); step < minStep {
		step = minStep
	}
	points := make([]Point, 0, total/step+2)
	for day := 0; day < total; day += step {
		points = append(points, Point{Day: day, Percent: s.At(float64(day))})
	}
	return append(points, Point{Day: total, Percent: s.At(float64(total))})
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
