package timesheet_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rpggio/fcea/internal/domain/timesheet"
	"github.com/stretchr/testify/require"
)

func rates(m map[string]float64) timesheet.RateResolver {
	return func(party string) float64 { return m[party] }
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestLedger_AppendResolvesRate(t *testing.T) {
	l := timesheet.NewLedger()
	resolve := rates(map[string]float64{"Ada": 150, "Grace": 120})

	e, err := l.Append(timesheet.Draft{Party: "Ada", Date: day(1), WorkDescription: "API design", Hours: 3}, resolve)
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	require.Equal(t, 150.0, e.Rate)
	require.Equal(t, 450.0, e.Total)

	override, err := l.Append(timesheet.Draft{Party: "Grace", Date: day(2), Hours: 2.5, Rate: 90}, resolve)
	require.NoError(t, err)
	require.Equal(t, 90.0, override.Rate)
	require.Equal(t, 225.0, override.Total)

	require.Equal(t, 2, l.Len())
	require.NotEqual(t, e.ID, override.ID)
}

func TestLedger_TotalInvariant(t *testing.T) {
	l := timesheet.NewLedger()
	resolve := rates(map[string]float64{"Ada": 137.5})
	for _, hours := range []float64{0, 0.25, 1, 7.75, 12.3} {
		e, err := l.Append(timesheet.Draft{Party: "Ada", Hours: hours}, resolve)
		require.NoError(t, err)
		require.InDelta(t, e.Hours*e.Rate, e.Total, 1e-9)
	}

	updated, err := l.Update(2, timesheet.Draft{Party: "Ada", Hours: 4, Rate: 99}, resolve)
	require.NoError(t, err)
	require.InDelta(t, 396.0, updated.Total, 1e-9)
}

func TestLedger_RatesAreSnapshots(t *testing.T) {
	l := timesheet.NewLedger()
	current := map[string]float64{"Ada": 100}

	_, err := l.Append(timesheet.Draft{Party: "Ada", Hours: 1}, rates(current))
	require.NoError(t, err)

	current["Ada"] = 200
	_, err = l.Append(timesheet.Draft{Party: "Ada", Hours: 1}, rates(current))
	require.NoError(t, err)

	entries := l.Entries()
	require.Equal(t, 100.0, entries[0].Rate)
	require.Equal(t, 200.0, entries[1].Rate)
}

func TestLedger_UpdateKeepsIDAndPosition(t *testing.T) {
	l := timesheet.NewLedger()
	resolve := rates(map[string]float64{"Ada": 10})
	for i := 1; i <= 3; i++ {
		_, err := l.Append(timesheet.Draft{Party: "Ada", Date: day(i), Hours: float64(i)}, resolve)
		require.NoError(t, err)
	}
	before := l.Entries()

	_, err := l.Update(1, timesheet.Draft{Party: "Ada", Date: day(9), WorkDescription: "edited", Hours: 5}, resolve)
	require.NoError(t, err)

	after := l.Entries()
	require.Equal(t, before[1].ID, after[1].ID)
	require.Equal(t, "edited", after[1].WorkDescription)
	require.Equal(t, before[0], after[0])
	require.Equal(t, before[2], after[2])
}

func TestLedger_RemoveCollapses(t *testing.T) {
	l := timesheet.NewLedger()
	resolve := rates(map[string]float64{"Ada": 10})
	var ids []string
	for i := 1; i <= 3; i++ {
		e, err := l.Append(timesheet.Draft{Party: "Ada", Hours: float64(i)}, resolve)
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	removed, err := l.Remove(0)
	require.NoError(t, err)
	require.Equal(t, ids[0], removed.ID)

	entries := l.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, ids[1], entries[0].ID)
	require.Equal(t, ids[2], entries[1].ID)
}

func TestLedger_IndexErrors(t *testing.T) {
	l := timesheet.NewLedger()
	_, err := l.Update(0, timesheet.Draft{Party: "Ada"}, nil)
	require.ErrorIs(t, err, timesheet.ErrEntryNotFound)
	_, err = l.Remove(-1)
	require.ErrorIs(t, err, timesheet.ErrEntryNotFound)
	_, err = l.Get(3)
	require.ErrorIs(t, err, timesheet.ErrEntryNotFound)
}

func TestLedger_InvalidDrafts(t *testing.T) {
	l := timesheet.NewLedger()
	_, err := l.Append(timesheet.Draft{Party: "  ", Hours: 1}, nil)
	require.ErrorIs(t, err, timesheet.ErrInvalidEntry)
	_, err = l.Append(timesheet.Draft{Party: "Ada", Hours: -1}, nil)
	require.ErrorIs(t, err, timesheet.ErrInvalidEntry)
	_, err = l.Append(timesheet.Draft{Party: "Ada", Hours: 1, Rate: -5}, nil)
	require.ErrorIs(t, err, timesheet.ErrInvalidEntry)
	require.Zero(t, l.Len())
}

func TestSummary_EmptyLedger(t *testing.T) {
	s := timesheet.NewLedger().Summary()
	require.Zero(t, s.TotalHoursWorked)
	require.Zero(t, s.TotalDeferredWages)
	require.Zero(t, s.AverageHourlyRate)
	require.Empty(t, s.OwedByParty)
}

func TestSummary_Aggregates(t *testing.T) {
	l := timesheet.NewLedger()
	resolve := rates(map[string]float64{"Ada": 150, "Grace": 100})
	_, _ = l.Append(timesheet.Draft{Party: "Ada", Hours: 10}, resolve)
	_, _ = l.Append(timesheet.Draft{Party: "Grace", Hours: 10}, resolve)
	_, _ = l.Append(timesheet.Draft{Party: "Ada", Hours: 2}, resolve)

	s := l.Summary()
	require.Equal(t, 3, s.EntryCount)
	require.Equal(t, 22.0, s.TotalHoursWorked)
	require.Equal(t, 2800.0, s.TotalDeferredWages)
	require.InDelta(t, 2800.0/22.0, s.AverageHourlyRate, 1e-9)
	require.Equal(t, 1800.0, s.OwedByParty["Ada"])
	require.Equal(t, 1000.0, s.OwedByParty["Grace"])
	require.Equal(t, 12.0, s.HoursByParty["Ada"])
}

func TestWriteCSV_ColumnContract(t *testing.T) {
	l := timesheet.NewLedger()
	resolve := rates(map[string]float64{"Ada": 150, "Grace": 120})
	_, _ = l.Append(timesheet.Draft{Party: "Grace", Date: day(4), WorkDescription: "Pitch deck, v2", Hours: 1.5}, resolve)
	_, _ = l.Append(timesheet.Draft{Party: "Ada", Date: day(5), WorkDescription: "Billing", Hours: 2}, resolve)

	var buf bytes.Buffer
	require.NoError(t, timesheet.WriteCSV(&buf, l.Entries(), []string{"Ada", "Grace"}))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	require.Equal(t, []string{"Ada Total Deferred Wages", "$300.00"}, rows[0])
	require.Equal(t, []string{"Grace Total Deferred Wages", "$180.00"}, rows[1])
	require.Equal(t, timesheet.CSVHeader, rows[2])
	require.Equal(t, []string{"Grace", "2025-03-04", "Pitch deck, v2", "1.50", "$120.00", "$180.00"}, rows[3])
	require.Equal(t, []string{"Ada", "2025-03-05", "Billing", "2.00", "$150.00", "$300.00"}, rows[4])
}

func TestWriteCSV_EmptyLedgerStillSummarizesParties(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, timesheet.WriteCSV(&buf, nil, []string{"Founder", "Contributor"}))
	require.Equal(t,
		"Founder Total Deferred Wages,$0.00\nContributor Total Deferred Wages,$0.00\n"+
			"Partner,Date,Work Done,Hours,Rate ($/hr),Total\n",
		buf.String())
}

func TestExportFileName(t *testing.T) {
	require.Equal(t, "Deferred-Wages-Timesheet-2025-03-07.csv", timesheet.ExportFileName(day(7)))
}
