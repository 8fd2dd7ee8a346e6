package contract

import "time"

// Seed is the starting state of both parties.
type Seed struct {
	Founder     FounderParty
	Contributor ContributorParty
}

// Seeder produces the seed state. The store calls it on construction and on
// every reset.
type Seeder interface {
	Seed() Seed
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// DefaultSeed returns both parties with documented defaults.
func DefaultSeed() Seed {
	return Seed{Founder: DefaultFounder(), Contributor: DefaultContributor()}
}

// StaticSeeder always returns the same seed.
type StaticSeeder Seed

// Seed implements Seeder.
func (s StaticSeeder) Seed() Seed {
	return Seed(s)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
