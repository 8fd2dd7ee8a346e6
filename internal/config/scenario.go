package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/rpggio/fcea/internal/sharecode"
	"gopkg.in/yaml.v3"
)

// Scenario is a YAML description of the two parties. Omitted fields keep
// their defaults.
type Scenario struct {
	Founder     FounderScenario     `yaml:"founder"`
	Contributor ContributorScenario `yaml:"contributor"`
}

type FounderScenario struct {
	Name             *string  `yaml:"name"`
	Email            *string  `yaml:"email"`
	Phone            *string  `yaml:"phone"`
	Address          *string  `yaml:"address"`
	CompanyName      *string  `yaml:"company_name"`
	DeferredWageRate *float64 `yaml:"deferred_wage_rate"`
}

type ContributorScenario struct {
	Name               *string  `yaml:"name"`
	Email              *string  `yaml:"email"`
	Phone              *string  `yaml:"phone"`
	Address            *string  `yaml:"address"`
	TotalEquityGranted *float64 `yaml:"total_equity_granted"`
	VestingPeriod      *float64 `yaml:"vesting_period"`
	CliffDays          *int     `yaml:"cliff_days"`
	VestingExponent    *float64 `yaml:"vesting_exponent"`
	DeferredWageRate   *float64 `yaml:"deferred_wage_rate"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario file: %w", err)
	}
	return s, nil
}

// Values returns the scenario as share-link query parameters, so it goes
// through the same validation as a shared link.
func (s Scenario) Values() url.Values {
	v := url.Values{}
	setString(v, sharecode.KeyFounderName, s.Founder.Name)
	setString(v, sharecode.KeyFounderEmail, s.Founder.Email)
	setString(v, sharecode.KeyFounderPhone, s.Founder.Phone)
	setString(v, sharecode.KeyFounderAddress, s.Founder.Address)
	setString(v, sharecode.KeyCompanyName, s.Founder.CompanyName)
	setFloat(v, sharecode.KeyFounderDeferredWageRate, s.Founder.DeferredWageRate)

	setString(v, sharecode.KeyContributorName, s.Contributor.Name)
	setString(v, sharecode.KeyContributorEmail, s.Contributor.Email)
	setString(v, sharecode.KeyContributorPhone, s.Contributor.Phone)
	setString(v, sharecode.KeyContributorAddress, s.Contributor.Address)
	setFloat(v, sharecode.KeyTotalEquityGranted, s.Contributor.TotalEquityGranted)
	setFloat(v, sharecode.KeyVestingPeriod, s.Contributor.VestingPeriod)
	if s.Contributor.CliffDays != nil {
		v.Set(sharecode.KeyCliffDays, strconv.Itoa(*s.Contributor.CliffDays))
	}
	setFloat(v, sharecode.KeyVestingExponent, s.Contributor.VestingExponent)
	setFloat(v, sharecode.KeyContributorDeferredWageRate, s.Contributor.DeferredWageRate)
	return v
}

func setString(v url.Values, key string, value *string) {
	if value != nil {
		v.Set(key, *value)
	}
}

func setFloat(v url.Values, key string, value *float64) {
	if value != nil {
		v.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}
