package mcp

import (
	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/domain/timesheet"
	"github.com/rpggio/fcea/internal/domain/vesting"
)

// EmptyParams is the input of tools that take no arguments.
type EmptyParams struct{}

type PingResult struct {
	Status    string `json:"status"`
	Workspace string `json:"workspace"`
}

// ContractResult is the full editable state of a workspace.
type ContractResult struct {
	Founder             contract.FounderParty     `json:"founder"`
	Contributor         contract.ContributorParty `json:"contributor"`
	FounderModified     []contract.Field          `json:"founder_modified"`
	ContributorModified []contract.Field          `json:"contributor_modified"`
	Schedule            vesting.Schedule          `json:"schedule"`
	Timesheet           timesheet.Summary         `json:"timesheet"`
}

type CalculateVestingParams struct {
	Days float64 `json:"days" jsonschema:"days of service"`
	// Overrides apply to this calculation only.
	TotalEquityGranted *float64 `json:"total_equity_granted,omitempty" jsonschema:"equity percentage to use instead of the contributor's"`
	VestingPeriod      *float64 `json:"vesting_period,omitempty" jsonschema:"vesting period in years"`
	CliffDays          *int     `json:"cliff_days,omitempty" jsonschema:"cliff in days"`
	VestingExponent    *float64 `json:"vesting_exponent,omitempty" jsonschema:"curve exponent"`
}

type CalculateVestingResult struct {
	Days     float64          `json:"days"`
	Percent  float64          `json:"percent"`
	Rounded  float64          `json:"rounded"`
	Schedule vesting.Schedule `json:"schedule"`
}

type VestingCurveParams struct {
	Step int `json:"step,omitempty" jsonschema:"sampling interval in days (default 30)"`
}

type VestingCurveResult struct {
	Schedule vesting.Schedule `json:"schedule"`
	Points   []vesting.Point  `json:"points"`
}

type VestingMilestonesResult struct {
	HorizonDays int                    `json:"horizon_days"`
	CliffDays   int                    `json:"cliff_days"`
	Rows        []vesting.MilestoneRow `json:"rows"`
}

type DistributeWagesParams struct {
	Profit float64 `json:"profit" jsonschema:"profit available for distribution"`
	// Owed defaults to the workspace timesheet totals.
	Owed map[string]float64 `json:"owed,omitempty" jsonschema:"amount owed per party; omit to use the timesheet"`
}

type TimesheetEntryParams struct {
	Party           string  `json:"party" jsonschema:"party name, or founder / contributor"`
	Date            string  `json:"date,omitempty" jsonschema:"YYYY-MM-DD; defaults to today"`
	WorkDescription string  `json:"work_description,omitempty"`
	Hours           float64 `json:"hours"`
	Rate            float64 `json:"rate,omitempty" jsonschema:"hourly rate; omit to use the party's deferred wage rate"`
}

type UpdateTimesheetEntryParams struct {
	Index           int     `json:"index" jsonschema:"zero-based position in list_timesheet"`
	Party           string  `json:"party" jsonschema:"party name, or founder / contributor"`
	Date            string  `json:"date,omitempty" jsonschema:"YYYY-MM-DD; defaults to today"`
	WorkDescription string  `json:"work_description,omitempty"`
	Hours           float64 `json:"hours"`
	Rate            float64 `json:"rate,omitempty" jsonschema:"hourly rate; omit to use the party's deferred wage rate"`
}

type RemoveTimesheetEntryParams struct {
	Index int `json:"index" jsonschema:"zero-based position in list_timesheet"`
}

// Entry is a timesheet entry with its date rendered as YYYY-MM-DD.
type Entry struct {
	ID              string  `json:"id"`
	Party           string  `json:"party"`
	Date            string  `json:"date"`
	WorkDescription string  `json:"work_description"`
	Hours           float64 `json:"hours"`
	Rate            float64 `json:"rate"`
	Total           float64 `json:"total"`
}

func toEntry(e timesheet.Entry) Entry {
	return Entry{
		ID:              e.ID,
		Party:           e.Party,
		Date:            e.Date.Format(dateLayout),
		WorkDescription: e.WorkDescription,
		Hours:           e.Hours,
		Rate:            e.Rate,
		Total:           e.Total,
	}
}

type TimesheetEntryResult struct {
	Entry   Entry             `json:"entry"`
	Summary timesheet.Summary `json:"summary"`
}

type ListTimesheetResult struct {
	Entries []Entry           `json:"entries"`
	Summary timesheet.Summary `json:"summary"`
}

type ExportTimesheetResult struct {
	FileName string `json:"file_name"`
	CSV      string `json:"csv"`
}

type PlaceholdersResult struct {
	Placeholders map[string]string `json:"placeholders"`
}

type RenderAgreementParams struct {
	Format string `json:"format,omitempty" jsonschema:"markdown (default) or html"`
}

type RenderAgreementResult struct {
	Format      string `json:"format"`
	PDFFileName string `json:"pdf_file_name"`
	Content     string `json:"content"`
}

type ShareLinkParams struct {
	BaseURL string `json:"base_url,omitempty" jsonschema:"agreement URL to attach the query to"`
}

type ShareLinkResult struct {
	URL   string `json:"url"`
	Query string `json:"query"`
}

type LoadShareLinkParams struct {
	URL string `json:"url" jsonschema:"share link, or just its query string"`
}
