package wages

import (
	"math"
	"sort"
)

// Distribution is the outcome of settling deferred wages from a profit pool.
type Distribution struct {
	// Ratio is the fraction of each party's debt that gets paid, in [0,1].
	Ratio       float64            `json:"ratio"`
	Payments    map[string]float64 `json:"payments"`
	Owed        map[string]float64 `json:"owed"`
	TotalOwed   float64            `json:"total_owed"`
	TotalPaid   float64            `json:"total_paid"`
	Unallocated float64            `json:"unallocated"`
}

// Distribute pays every party the same fraction of what it is owed.
//
// The fraction is availableProfit/totalOwed capped at 1. With nothing owed the
// ratio is 0 and every payment is 0. Negative amounts count as 0.
func Distribute(owed map[string]float64, availableProfit float64) Distribution {
	profit := nonNegative(availableProfit)

	d := Distribution{
		Payments: make(map[string]float64, len(owed)),
		Owed:     make(map[string]float64, len(owed)),
	}
	for party, amount := range owed {
		amount = nonNegative(amount)
		d.Owed[party] = amount
		d.TotalOwed += amount
	}

	if d.TotalOwed > 0 {
		d.Ratio = math.Min(profit/d.TotalOwed, 1)
	}

	parties := d.Parties()
	d.TotalPaid = d.pay(parties)
	// Rounding can push the sum a few ulps past the pool. Shrink the shared
	// ratio until it fits so every party still gets the same fraction.
	for d.TotalPaid > profit && d.Ratio > 0 {
		d.Ratio = math.Nextafter(d.Ratio, 0)
		d.TotalPaid = d.pay(parties)
	}
	d.Unallocated = math.Max(profit-d.TotalPaid, 0)

	return d
}

func (d Distribution) pay(parties []string) float64 {
	var total float64
	for _, party := range parties {
		payment := d.Owed[party] * d.Ratio
		d.Payments[party] = payment
		total += payment
	}
	return total
}

// Parties returns the party identifiers in sorted order.
func (d Distribution) Parties() []string {
	parties := make([]string, 0, len(d.Owed))
	for party := range d.Owed {
		parties = append(parties, party)
	}
	sort.Strings(parties)
	return parties
}

// Outstanding is what remains owed to a party after its payment.
func (d Distribution) Outstanding(party string) float64 {
	return d.Owed[party] - d.Payments[party]
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}
