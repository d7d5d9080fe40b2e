package calculator

import (
	"fmt"
	"math"

	"github.com/mmynk/groupspend/internal/models"
	"github.com/shopspring/decimal"
)

// Strategy determines how a share table is derived from an amount.
type Strategy string

const (
	StrategyEqual      Strategy = "equal"
	StrategyPercentage Strategy = "percentage"
	StrategyCustom     Strategy = "custom"
)

// ParseStrategy converts a strategy name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyEqual, StrategyPercentage, StrategyCustom:
		return st, nil
	}
	return "", newValidationError(ReasonUnknownStrategy, fmt.Sprintf("%q", s))
}

// ShareTable maps a member ID to a share whose meaning depends on the strategy.
type ShareTable map[string]float64

// Clone returns a copy of the table. A nil table clones to an empty one.
func (t ShareTable) Clone() ShareTable {
	out := make(ShareTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

var hundred = decimal.NewFromInt(100)

// ResolveEqual gives every roster member the same percentage, 100/n.
//
// The whole roster is used, not just the participants of the expense.
// An empty roster yields an empty table.
func ResolveEqual(roster []models.Member) ShareTable {
	shares := make(ShareTable, len(roster))
	if len(roster) == 0 {
		return shares
	}
	equalShare := 100 / float64(len(roster))
	for _, m := range roster {
		shares[m.ID] = equalShare
	}
	return shares
}

// ResolvePercentage returns shares unchanged if they sum to exactly 100.
//
// Each share is taken at its shortest decimal representation and summed in
// decimal arithmetic, so 33.33+33.33+33.34 is exactly 100.
func ResolvePercentage(shares ShareTable) (ShareTable, error) {
	sum, ok := sumShares(shares)
	if !ok {
		return nil, newValidationError(ReasonSumMismatch, "shares must be finite numbers")
	}
	if !sum.Equal(hundred) {
		return nil, newValidationError(ReasonSumMismatch, fmt.Sprintf("percentages sum to %s", sum.String()))
	}
	return shares.Clone(), nil
}

// ResolveCustom returns shares unchanged. Whether they add up to the amount
// is for the caller to decide; see CustomRemainder.
func ResolveCustom(shares ShareTable) ShareTable {
	return shares.Clone()
}

// ResolveShares produces the final share table for the draft's strategy.
func ResolveShares(d ExpenseDraft) (ShareTable, error) {
	switch d.Strategy {
	case StrategyEqual:
		return ResolveEqual(d.Roster), nil
	case StrategyPercentage:
		return ResolvePercentage(d.Shares)
	case StrategyCustom:
		return ResolveCustom(d.Shares), nil
	default:
		return nil, newValidationError(ReasonUnknownStrategy, fmt.Sprintf("%q", string(d.Strategy)))
	}
}

func sumShares(shares ShareTable) (decimal.Decimal, bool) {
	sum := decimal.Zero
	for _, v := range shares {
		// decimal.NewFromFloat panics on NaN and infinities
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum, true
}
