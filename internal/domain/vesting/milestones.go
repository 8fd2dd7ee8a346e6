package vesting

// The rendered agreement carries a static example schedule. It is evaluated on
// a fixed four-year horizon with a 180-day cliff regardless of the
// contributor's configured period and cliff.
const (
	IllustrativeHorizonDays = 1460
	IllustrativeCliffDays   = 180
)

// Milestone pairs a month label with the calendar-day count used in the table.
type Milestone struct {
	Months int `json:"months"`
	Days   int `json:"days"`
}

// Milestones are the rows of the example vesting table.
var Milestones = []Milestone{
	{Months: 12, Days: 365},
	{Months: 18, Days: 547},
	{Months: 24, Days: 730},
	{Months: 30, Days: 912},
	{Months: 36, Days: 1095},
	{Months: 42, Days: 1277},
	{Months: 48, Days: 1460},
}

// MilestoneRow is one evaluated row of the example table.
type MilestoneRow struct {
	Milestone
	Percent float64 `json:"percent"`
}

// MilestoneTable evaluates the example table for a grant and curve exponent.
func MilestoneTable(totalEquity, exponent float64) []MilestoneRow {
	rows := make([]MilestoneRow, 0, len(Milestones))
	for _, m := range Milestones {
		rows = append(rows, MilestoneRow{
			Milestone: m,
			Percent: VestedPercentage(totalEquity, float64(m.Days),
				IllustrativeHorizonDays, IllustrativeCliffDays, exponent),
		})
	}
	return rows
}
