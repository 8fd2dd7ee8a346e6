package document

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/domain/vesting"
	"github.com/rpggio/fcea/internal/domain/wages"
)

// Placeholders maps placeholder names to their rendered values.
type Placeholders map[string]string

// Names returns the placeholder names in sorted order.
func (p Placeholders) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// The worked deferred-wage example printed in every agreement.
const (
	ExampleContributorOwed = 5000.0
	ExampleFounderOwed     = 1000.0
	ExampleAvailableProfit = 1000.0
)

const dateLayout = "January 2, 2006"

// Project computes every placeholder of the agreement from the two parties.
// Empty identity fields render as bracketed labels so the document is always
// complete.
func Project(founder contract.FounderParty, contributor contract.ContributorParty, now time.Time) Placeholders {
	p := Placeholders{
		"FounderName":                 orLabel(founder.Name, "Founder Name"),
		"FounderEmail":                orLabel(founder.Email, "Founder Email"),
		"FounderPhone":                orLabel(founder.Phone, "Founder Phone"),
		"FounderAddress":              orLabel(founder.Address, "Founder Address"),
		"CompanyName":                 orLabel(founder.CompanyName, "Company Name"),
		"CustomIPDefinition":          orLabel(founder.CustomIPDefinition, "IP Definition"),
		"FounderDeferredWageRate":     Currency(founder.DeferredWageRate),
		"ContributorName":             orLabel(contributor.Name, "Contributor Name"),
		"ContributorEmail":            orLabel(contributor.Email, "Contributor Email"),
		"ContributorPhone":            orLabel(contributor.Phone, "Contributor Phone"),
		"ContributorAddress":          orLabel(contributor.Address, "Contributor Address"),
		"TotalEquityGranted":          number(contributor.TotalEquityGranted),
		"VestingPeriod":               number(contributor.VestingPeriod),
		"VestingPeriodDays":           strconv.Itoa(contributor.Schedule().TotalDays()),
		"CliffDays":                   strconv.Itoa(contributor.CliffDays),
		"VestingExponent":             number(contributor.VestingExponent),
		"ContributorDeferredWageRate": Currency(contributor.DeferredWageRate),
		"CurrentDate":                 now.Format(dateLayout),
	}

	for _, row := range vesting.MilestoneTable(contributor.TotalEquityGranted, contributor.VestingExponent) {
		p[fmt.Sprintf("VestedAt%dMonths", row.Months)] = Percent(row.Percent)
	}

	example := wages.Distribute(map[string]float64{
		"contributor": ExampleContributorOwed,
		"founder":     ExampleFounderOwed,
	}, ExampleAvailableProfit)
	p["ExampleContributorOwed"] = Currency(ExampleContributorOwed)
	p["ExampleFounderOwed"] = Currency(ExampleFounderOwed)
	p["ExampleAvailableProfit"] = Currency(ExampleAvailableProfit)
	p["ExampleDistributionRatio"] = Percent(example.Ratio * 100)
	p["ExampleContributorPayment"] = Currency(example.Payments["contributor"])
	p["ExampleFounderPayment"] = Currency(example.Payments["founder"])

	return p
}

// Currency formats a dollar amount with thousands separators and cents.
func Currency(amount float64) string {
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// Percent formats a percentage rounded to two decimals.
func Percent(v float64) string {
	return strconv.FormatFloat(vesting.Round2(v), 'f', 2, 64) + "%"
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orLabel(value, label string) string {
	if strings.TrimSpace(value) == "" {
		return "[" + label + "]"
	}
	return value
}
