package mocks

import (
	"time"

	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/stretchr/testify/mock"
)

// Seeder is a mock for contract.Seeder.
type Seeder struct {
	mock.Mock
}

func (m *Seeder) Seed() contract.Seed {
	args := m.Called()
	return args.Get(0).(contract.Seed)
}

// Clock is a mock for contract.Clock.
type Clock struct {
	mock.Mock
}

func (m *Clock) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}
