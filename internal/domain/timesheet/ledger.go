package timesheet

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Ledger is an ordered list of timesheet entries. Insertion order is display
// order. A Ledger is not safe for concurrent use.
type Ledger struct {
	entries []Entry
}

// NewLedger creates a ledger holding copies of the given entries.
func NewLedger(entries ...Entry) *Ledger {
	l := &Ledger{}
	l.entries = append(l.entries, entries...)
	return l
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in display order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Get returns the entry at index.
func (l *Ledger) Get(index int) (Entry, error) {
	if index < 0 || index >= len(l.entries) {
		return Entry{}, fmt.Errorf("%w: index %d", ErrEntryNotFound, index)
	}
	return l.entries[index], nil
}

// Append saves a draft as a new entry at the end of the ledger.
func (l *Ledger) Append(draft Draft, resolve RateResolver) (Entry, error) {
	entry, err := build(draft, resolve)
	if err != nil {
		return Entry{}, err
	}
	entry.ID = uuid.NewString()
	l.entries = append(l.entries, entry)
	return entry, nil
}

// Update replaces the entry at index, keeping its ID and position.
func (l *Ledger) Update(index int, draft Draft, resolve RateResolver) (Entry, error) {
	current, err := l.Get(index)
	if err != nil {
		return Entry{}, err
	}
	entry, err := build(draft, resolve)
	if err != nil {
		return Entry{}, err
	}
	entry.ID = current.ID
	l.entries[index] = entry
	return entry, nil
}

// Remove deletes the entry at index; later entries shift down.
func (l *Ledger) Remove(index int) (Entry, error) {
	removed, err := l.Get(index)
	if err != nil {
		return Entry{}, err
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return removed, nil
}

// Clear drops every entry.
func (l *Ledger) Clear() {
	l.entries = nil
}

// Summary derives the aggregate totals from the current entries.
func (l *Ledger) Summary() Summary {
	return Summarize(l.entries)
}

// Summarize derives aggregates from a list of entries.
func Summarize(entries []Entry) Summary {
	s := Summary{
		EntryCount:   len(entries),
		OwedByParty:  make(map[string]float64),
		HoursByParty: make(map[string]float64),
	}
	for _, e := range entries {
		s.TotalHoursWorked += e.Hours
		s.TotalDeferredWages += e.Total
		s.OwedByParty[e.Party] += e.Total
		s.HoursByParty[e.Party] += e.Hours
	}
	if s.TotalHoursWorked > 0 {
		s.AverageHourlyRate = s.TotalDeferredWages / s.TotalHoursWorked
	}
	return s
}

func build(draft Draft, resolve RateResolver) (Entry, error) {
	party := strings.TrimSpace(draft.Party)
	if party == "" {
		return Entry{}, fmt.Errorf("%w: party is required", ErrInvalidEntry)
	}
	if invalidAmount(draft.Hours) {
		return Entry{}, fmt.Errorf("%w: hours must be a non-negative number", ErrInvalidEntry)
	}
	if invalidAmount(draft.Rate) {
		return Entry{}, fmt.Errorf("%w: rate must be a non-negative number", ErrInvalidEntry)
	}

	rate := draft.Rate
	if rate == 0 && resolve != nil {
		rate = resolve(party)
	}
	if invalidAmount(rate) {
		rate = 0
	}

	return Entry{
		Party:           party,
		Date:            draft.Date,
		WorkDescription: strings.TrimSpace(draft.WorkDescription),
		Hours:           draft.Hours,
		Rate:            rate,
		Total:           draft.Hours * rate,
	}, nil
}

func invalidAmount(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
