package calculator

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

var cent = decimal.New(1, -2)

// Allocate converts a payload's share table into money owed per member,
// rounded to cents.
//
// For equal and percentage payloads the parts always add up to the amount:
// every part is rounded down and the leftover cents go to the members with
// the largest remainders (ties broken by member ID). Custom shares are
// already money and are only rounded.
func Allocate(p *SplitPayload) map[string]decimal.Decimal {
	amount := decimal.NewFromFloat(p.Amount).Round(2)
	out := make(map[string]decimal.Decimal, len(p.Shares))

	if p.Strategy == StrategyCustom {
		for id, share := range p.Shares {
			if finite(share) {
				out[id] = decimal.NewFromFloat(share).Round(2)
			}
		}
		return out
	}

	type part struct {
		id   string
		rest decimal.Decimal
	}
	parts := make([]part, 0, len(p.Shares))
	allocated := decimal.Zero

	n := decimal.NewFromInt(int64(len(p.Shares)))
	for id, share := range p.Shares {
		if !finite(share) {
			continue
		}
		var raw decimal.Decimal
		if p.Strategy == StrategyEqual {
			raw = amount.Div(n)
		} else {
			raw = amount.Mul(decimal.NewFromFloat(share)).Div(hundred)
		}
		floor := raw.RoundFloor(2)
		out[id] = floor
		allocated = allocated.Add(floor)
		parts = append(parts, part{id: id, rest: raw.Sub(floor)})
	}

	sort.Slice(parts, func(i, j int) bool {
		if c := parts[i].rest.Cmp(parts[j].rest); c != 0 {
			return c > 0
		}
		return parts[i].id < parts[j].id
	})

	leftover := amount.Sub(allocated)
	for i := 0; leftover.GreaterThanOrEqual(cent) && len(parts) > 0; i = (i + 1) % len(parts) {
		id := parts[i].id
		out[id] = out[id].Add(cent)
		leftover = leftover.Sub(cent)
	}
	return out
}

// CustomRemainder returns the part of the amount not covered by the shares
// (amount minus their sum). Negative when the shares exceed the amount.
// ok is false if any share is not a finite number.
func CustomRemainder(p *SplitPayload) (remainder decimal.Decimal, ok bool) {
	sum, ok := sumShares(p.Shares)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(p.Amount).Sub(sum), true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
