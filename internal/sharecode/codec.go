// Package sharecode turns a filled-in agreement scenario into URL query
// parameters and back, so a scenario can be shared as a link.
package sharecode

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/rpggio/fcea/internal/domain/contract"
)

// Query parameter keys.
const (
	KeyFounderName                 = "founderName"
	KeyFounderEmail                = "founderEmail"
	KeyFounderPhone                = "founderPhone"
	KeyFounderAddress              = "founderAddress"
	KeyCompanyName                 = "companyName"
	KeyFounderDeferredWageRate     = "founderDeferredWageRate"
	KeyContributorName             = "contributorName"
	KeyContributorEmail            = "contributorEmail"
	KeyContributorPhone            = "contributorPhone"
	KeyContributorAddress          = "contributorAddress"
	KeyTotalEquityGranted          = "totalEquityGranted"
	KeyVestingPeriod               = "vestingPeriod"
	KeyContributorDeferredWageRate = "contributorDeferredWageRate"
	KeyCliffDays                   = "cliffDays"
	KeyVestingExponent             = "vestingExponent"
)

// Keys lists every parameter the codec reads or writes.
var Keys = []string{
	KeyFounderName, KeyFounderEmail, KeyFounderPhone, KeyFounderAddress,
	KeyCompanyName, KeyFounderDeferredWageRate,
	KeyContributorName, KeyContributorEmail, KeyContributorPhone, KeyContributorAddress,
	KeyTotalEquityGranted, KeyVestingPeriod, KeyContributorDeferredWageRate,
	KeyCliffDays, KeyVestingExponent,
}

// Values returns the parameters for every field that differs from its
// documented default.
func Values(founder contract.FounderParty, contributor contract.ContributorParty) url.Values {
	df := contract.DefaultFounder()
	dc := contract.DefaultContributor()
	v := url.Values{}

	putString(v, KeyFounderName, founder.Name, df.Name)
	putString(v, KeyFounderEmail, founder.Email, df.Email)
	putString(v, KeyFounderPhone, founder.Phone, df.Phone)
	putString(v, KeyFounderAddress, founder.Address, df.Address)
	putString(v, KeyCompanyName, founder.CompanyName, df.CompanyName)
	putFloat(v, KeyFounderDeferredWageRate, founder.DeferredWageRate, df.DeferredWageRate)

	putString(v, KeyContributorName, contributor.Name, dc.Name)
	putString(v, KeyContributorEmail, contributor.Email, dc.Email)
	putString(v, KeyContributorPhone, contributor.Phone, dc.Phone)
	putString(v, KeyContributorAddress, contributor.Address, dc.Address)
	putFloat(v, KeyTotalEquityGranted, contributor.TotalEquityGranted, dc.TotalEquityGranted)
	putFloat(v, KeyVestingPeriod, contributor.VestingPeriod, dc.VestingPeriod)
	putFloat(v, KeyContributorDeferredWageRate, contributor.DeferredWageRate, dc.DeferredWageRate)
	if contributor.CliffDays != dc.CliffDays {
		v.Set(KeyCliffDays, strconv.Itoa(contributor.CliffDays))
	}
	putFloat(v, KeyVestingExponent, contributor.VestingExponent, dc.VestingExponent)

	return v
}

// Encode returns the query string (without a leading "?") for the
// non-default fields, with keys sorted.
func Encode(founder contract.FounderParty, contributor contract.ContributorParty) string {
	return Values(founder, contributor).Encode()
}

// Decode parses a query string, a "?"-prefixed query, or a full URL into a
// seed. Absent keys take their documented defaults, and numeric values that
// are malformed or out of range fall back to the default as well.
func Decode(raw string) contract.Seed {
	values, _ := url.ParseQuery(QueryPart(raw))
	return FromValues(values)
}

// FromValues builds a seed from already-parsed query parameters.
func FromValues(v url.Values) contract.Seed {
	founder := contract.DefaultFounder()
	contributor := contract.DefaultContributor()

	getString(v, KeyFounderName, &founder.Name)
	getString(v, KeyFounderEmail, &founder.Email)
	getString(v, KeyFounderPhone, &founder.Phone)
	getString(v, KeyFounderAddress, &founder.Address)
	getString(v, KeyCompanyName, &founder.CompanyName)
	getFloat(v, KeyFounderDeferredWageRate, &founder.DeferredWageRate, nonNegative)

	getString(v, KeyContributorName, &contributor.Name)
	getString(v, KeyContributorEmail, &contributor.Email)
	getString(v, KeyContributorPhone, &contributor.Phone)
	getString(v, KeyContributorAddress, &contributor.Address)
	getFloat(v, KeyTotalEquityGranted, &contributor.TotalEquityGranted, func(f float64) bool { return f > 0 && f <= 100 })
	getFloat(v, KeyVestingPeriod, &contributor.VestingPeriod, contract.ValidVestingPeriod)
	getFloat(v, KeyContributorDeferredWageRate, &contributor.DeferredWageRate, nonNegative)
	var cliff float64
	if getFloat(v, KeyCliffDays, &cliff, func(f float64) bool { return nonNegative(f) && f == math.Trunc(f) && f <= contract.MaxCliffDays }) {
		contributor.CliffDays = int(cliff)
	}
	getFloat(v, KeyVestingExponent, &contributor.VestingExponent, positive)

	return contract.Seed{Founder: founder, Contributor: contributor}
}

// ShareURL appends the encoded scenario to base, replacing any query base
// already carries.
func ShareURL(base string, founder contract.FounderParty, contributor contract.ContributorParty) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.RawQuery = Encode(founder, contributor)
	u.Fragment = ""
	return u.String(), nil
}

// QuerySeeder seeds a contract store from a query string. It decodes on
// every call so a reset re-derives the state from the query.
type QuerySeeder struct {
	Query string
}

// Seed implements contract.Seeder.
func (q QuerySeeder) Seed() contract.Seed {
	return Decode(q.Query)
}

// QueryPart strips everything up to a "?" and from a "#" onward.
func QueryPart(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

func putString(v url.Values, key, value, def string) {
	if value != def {
		v.Set(key, value)
	}
}

func putFloat(v url.Values, key string, value, def float64) {
	if value != def {
		v.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
}

func getString(v url.Values, key string, dst *string) {
	if _, ok := v[key]; ok {
		*dst = v.Get(key)
	}
}

// getFloat stores a parsed value when it is finite and accepted, and reports
// whether it did.
func getFloat(v url.Values, key string, dst *float64, accept func(float64) bool) bool {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || !accept(f) {
		return false
	}
	*dst = f
	return true
}

func nonNegative(f float64) bool { return f >= 0 }

func positive(f float64) bool { return f > 0 }
