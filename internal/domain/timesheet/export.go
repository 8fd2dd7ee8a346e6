package timesheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVHeader is the fixed column order of the exported ledger.
var CSVHeader = []string{"Partner", "Date", "Work Done", "Hours", "Rate ($/hr)", "Total"}

const dateLayout = "2006-01-02"

// WriteCSV writes the ledger as CSV: one summary row per party with its
// cumulative debt, the header row, then one row per entry.
//
// The given parties are summarized first and always appear, even with no
// entries. Parties found only in entries follow in first-appearance order.
func WriteCSV(w io.Writer, entries []Entry, parties []string) error {
	cw := csv.NewWriter(w)

	owed := Summarize(entries).OwedByParty
	for _, party := range orderedParties(entries, parties) {
		if err := cw.Write([]string{party + " Total Deferred Wages", Currency(owed[party])}); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.Party,
			formatDate(e.Date),
			e.WorkDescription,
			strconv.FormatFloat(e.Hours, 'f', 2, 64),
			Currency(e.Rate),
			Currency(e.Total),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write entry row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Currency formats an amount with a leading dollar sign and two decimals.
func Currency(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}

// ExportFileName is the download name for a CSV export made at now.
func ExportFileName(now time.Time) string {
	return "Deferred-Wages-Timesheet-" + now.Format(dateLayout) + ".csv"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func orderedParties(entries []Entry, parties []string) []string {
	seen := make(map[string]bool, len(parties))
	out := make([]string, 0, len(parties))
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	for _, p := range parties {
		add(p)
	}
	for _, e := range entries {
		add(e.Party)
	}
	return out
}
