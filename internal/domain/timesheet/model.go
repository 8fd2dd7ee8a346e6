package timesheet

import "time"

// Entry is a saved unit of deferred-wage work. Rate and Total are snapshots
// taken when the entry was saved.
type Entry struct {
	ID              string    `json:"id"`
	Party           string    `json:"party"`
	Date            time.Time `json:"date"`
	WorkDescription string    `json:"work_description"`
	Hours           float64   `json:"hours"`
	Rate            float64   `json:"rate"`
	Total           float64   `json:"total"`
}

// Draft is the user-editable part of an entry. A zero Rate is resolved from
// the party's current deferred-wage rate when the draft is saved.
type Draft struct {
	Party           string
	Date            time.Time
	WorkDescription string
	Hours           float64
	Rate            float64
}

// RateResolver returns the current hourly rate for a party.
type RateResolver func(party string) float64

// Summary holds aggregates derived from the ledger.
type Summary struct {
	EntryCount         int                `json:"entry_count"`
	TotalHoursWorked   float64            `json:"total_hours_worked"`
	TotalDeferredWages float64            `json:"total_deferred_wages"`
	AverageHourlyRate  float64            `json:"average_hourly_rate"`
	OwedByParty        map[string]float64 `json:"owed_by_party"`
	HoursByParty       map[string]float64 `json:"hours_by_party"`
}
