package contract

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/fcea/internal/domain/timesheet"
	"github.com/rpggio/fcea/internal/domain/vesting"
	"github.com/rpggio/fcea/internal/domain/wages"
	"github.com/sasha-s/go-deadlock"
)

// Party selects one side of the agreement.
type Party string

const (
	PartyFounder     Party = "founder"
	PartyContributor Party = "contributor"
)

// ParseParty parses a party selector.
func ParseParty(s string) (Party, error) {
	switch Party(strings.ToLower(strings.TrimSpace(s))) {
	case PartyFounder:
		return PartyFounder, nil
	case PartyContributor:
		return PartyContributor, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParty, s)
}

// Store owns the founder, the contributor, and the timesheet for one session.
// Every view reads from it and every edit goes through it. Reads return
// copies. A Store is safe for concurrent use.
type Store struct {
	mu     deadlock.RWMutex
	seeder Seeder
	clock  Clock
	logger *slog.Logger

	founder     FounderParty
	contributor ContributorParty
	ledger      *timesheet.Ledger
	modified    map[Party]map[Field]bool
}

// NewStore creates a store seeded from seeder. A nil seeder uses the
// documented defaults and a nil clock uses the system time.
func NewStore(seeder Seeder, clock Clock, logger *slog.Logger) *Store {
	if seeder == nil {
		seeder = StaticSeeder(DefaultSeed())
	}
	if clock == nil {
		clock = systemClock{}
	}
	s := &Store{seeder: seeder, clock: clock, logger: logger}
	s.reseed()
	return s
}

// Founder returns the current founder.
func (s *Store) Founder() FounderParty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.founder
}

// Contributor returns the current contributor.
func (s *Store) Contributor() ContributorParty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contributor
}

// UpdateFounder applies a partial founder update. Every field present in
// the patch is marked modified, even when its value does not change.
func (s *Store) UpdateFounder(p FounderPatch) (FounderParty, error) {
	if err := p.Validate(); err != nil {
		return FounderParty{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markModified(PartyFounder, p.apply(&s.founder))
	return s.founder, nil
}

// UpdateContributor applies a partial contributor update. Every field
// present in the patch is marked modified, even when its value does not
// change.
func (s *Store) UpdateContributor(p ContributorPatch) (ContributorParty, error) {
	if err := p.Validate(); err != nil {
		return ContributorParty{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markModified(PartyContributor, p.apply(&s.contributor))
	return s.contributor, nil
}

// Modified returns the fields of a party touched since the last reset, in
// the party's field order.
func (s *Store) Modified(party Party) []Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modifiedFields(party)
}

// Entries returns the timesheet in display order.
func (s *Store) Entries() []timesheet.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Entries()
}

// Summary derives timesheet aggregates from the current entries.
func (s *Store) Summary() timesheet.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Summary()
}

// AddEntry saves a timesheet draft at the end of the ledger. A zero rate is
// taken from the matching party's current deferred-wage rate and a zero date
// defaults to today.
func (s *Store) AddEntry(d timesheet.Draft) (timesheet.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.ledger.Append(s.prepare(d), s.resolveRate)
	if err != nil {
		return timesheet.Entry{}, err
	}
	s.debug("timesheet entry added", "id", entry.ID, "party", entry.Party, "total", entry.Total)
	return entry, nil
}

// UpdateEntry replaces the entry at index.
func (s *Store) UpdateEntry(index int, d timesheet.Draft) (timesheet.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.ledger.Update(index, s.prepare(d), s.resolveRate)
	if err != nil {
		return timesheet.Entry{}, err
	}
	s.debug("timesheet entry updated", "id", entry.ID, "index", index)
	return entry, nil
}

// RemoveEntry deletes the entry at index.
func (s *Store) RemoveEntry(index int) (timesheet.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.ledger.Remove(index)
	if err != nil {
		return timesheet.Entry{}, err
	}
	s.debug("timesheet entry removed", "id", entry.ID, "index", index)
	return entry, nil
}

// Reset restores both parties from a fresh seed, empties the timesheet, and
// clears modification tracking.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reseed()
	s.debug("contract reset")
}

// Schedule returns the contributor's live vesting schedule.
func (s *Store) Schedule() vesting.Schedule {
	return s.Contributor().Schedule()
}

// VestedAt evaluates the live schedule after the given number of days.
func (s *Store) VestedAt(days float64) float64 {
	return s.Schedule().At(days)
}

// Distribute settles the accrued timesheet debt against availableProfit.
// Both parties always take part, keyed by display name.
func (s *Store) Distribute(availableProfit float64) wages.Distribution {
	s.mu.RLock()
	owed := map[string]float64{
		s.founder.DisplayName():     0,
		s.contributor.DisplayName(): 0,
	}
	for party, amount := range s.ledger.Summary().OwedByParty {
		owed[party] += amount
	}
	s.mu.RUnlock()
	return wages.Distribute(owed, availableProfit)
}

// ExportCSV writes the timesheet with the founder and contributor as the
// leading summary rows.
func (s *Store) ExportCSV(w io.Writer) error {
	s.mu.RLock()
	entries := s.ledger.Entries()
	parties := []string{s.founder.DisplayName(), s.contributor.DisplayName()}
	s.mu.RUnlock()
	return timesheet.WriteCSV(w, entries, parties)
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

func (s *Store) reseed() {
	seed := s.seeder.Seed()
	s.founder = seed.Founder
	s.contributor = seed.Contributor
	s.ledger = timesheet.NewLedger()
	s.modified = map[Party]map[Field]bool{
		PartyFounder:     {},
		PartyContributor: {},
	}
}

func (s *Store) markModified(party Party, fields []Field) {
	for _, f := range fields {
		s.modified[party][f] = true
	}
}

func (s *Store) modifiedFields(party Party) []Field {
	out := make([]Field, 0)
	for _, f := range fieldsOf(party) {
		if s.modified[party][f] {
			out = append(out, f)
		}
	}
	return out
}

// prepare canonicalizes the party identifier and fills a missing date.
func (s *Store) prepare(d timesheet.Draft) timesheet.Draft {
	switch s.matchParty(d.Party) {
	case PartyFounder:
		d.Party = s.founder.DisplayName()
	case PartyContributor:
		d.Party = s.contributor.DisplayName()
	}
	if d.Date.IsZero() {
		now := s.clock.Now()
		d.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return d
}

func (s *Store) resolveRate(party string) float64 {
	switch s.matchParty(party) {
	case PartyFounder:
		return s.founder.DeferredWageRate
	case PartyContributor:
		return s.contributor.DeferredWageRate
	}
	return 0
}

// matchParty maps an entry's party identifier to a side of the agreement by
// name or role word. The founder wins when both share a name.
func (s *Store) matchParty(identifier string) Party {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return ""
	}
	switch {
	case strings.EqualFold(id, s.founder.Name) || strings.EqualFold(id, RoleFounder):
		return PartyFounder
	case strings.EqualFold(id, s.contributor.Name) || strings.EqualFold(id, RoleContributor):
		return PartyContributor
	}
	return ""
}

func (s *Store) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func fieldsOf(party Party) []Field {
	if party == PartyFounder {
		return FounderFields
	}
	return ContributorFields
}
