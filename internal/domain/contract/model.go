package contract

import "github.com/rpggio/fcea/internal/domain/vesting"

// Documented defaults.
const (
	DefaultDeferredWageRate   = 150.0
	DefaultTotalEquityGranted = 25.0
	DefaultVestingPeriod      = 2.0
	DefaultCliffDays          = 180
	DefaultVestingExponent    = 2.0
)

// DefaultCustomIPDefinition is the intellectual property clause used until
// the founder supplies their own.
const DefaultCustomIPDefinition = `- All source code, designs, documentation, and other work product created for the Company during the engagement.
- Inventions, improvements, and know-how conceived while performing services for the Company.
- Trademarks, domain names, and branding developed in connection with the Company's products.`

// FounderParty describes the founder signing the agreement.
type FounderParty struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	CompanyName        string  `json:"company_name"`
	CustomIPDefinition string  `json:"custom_ip_definition"`
	DeferredWageRate   float64 `json:"deferred_wage_rate"`
}

// ContributorParty describes the contributor and their compensation terms.
type ContributorParty struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	TotalEquityGranted float64 `json:"total_equity_granted"`
	// VestingPeriod is measured in years.
	VestingPeriod    float64 `json:"vesting_period"`
	CliffDays        int     `json:"cliff_days"`
	VestingExponent  float64 `json:"vesting_exponent"`
	DeferredWageRate float64 `json:"deferred_wage_rate"`
}

// DefaultFounder returns the founder with documented defaults.
func DefaultFounder() FounderParty {
	return FounderParty{
		CustomIPDefinition: DefaultCustomIPDefinition,
		DeferredWageRate:   DefaultDeferredWageRate,
	}
}

// DefaultContributor returns the contributor with documented defaults.
func DefaultContributor() ContributorParty {
	return ContributorParty{
		TotalEquityGranted: DefaultTotalEquityGranted,
		VestingPeriod:      DefaultVestingPeriod,
		CliffDays:          DefaultCliffDays,
		VestingExponent:    DefaultVestingExponent,
		DeferredWageRate:   DefaultDeferredWageRate,
	}
}

// Schedule returns the contributor's live vesting configuration.
func (c ContributorParty) Schedule() vesting.Schedule {
	return vesting.Schedule{
		TotalEquity:        c.TotalEquityGranted,
		VestingPeriodYears: c.VestingPeriod,
		CliffDays:          c.CliffDays,
		Exponent:           c.VestingExponent,
	}
}

// DisplayName is the founder's name, or "Founder" when unset.
func (f FounderParty) DisplayName() string {
	if f.Name == "" {
		return RoleFounder
	}
	return f.Name
}

// DisplayName is the contributor's name, or "Contributor" when unset.
func (c ContributorParty) DisplayName() string {
	if c.Name == "" {
		return RoleContributor
	}
	return c.Name
}

// Role labels, also accepted as party identifiers on timesheet entries.
const (
	RoleFounder     = "Founder"
	RoleContributor = "Contributor"
)
