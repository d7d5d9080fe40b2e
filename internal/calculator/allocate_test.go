package calculator

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(parts map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range parts {
		total = total.Add(v)
	}
	return total
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name    string
		payload SplitPayload
		want    map[string]string
	}{
		{
			name:    "equal thirds hand out the odd cent",
			payload: SplitPayload{Amount: 100, Strategy: StrategyEqual, Shares: ResolveEqual(roster("a", "b", "c"))},
			want:    map[string]string{"u1": "33.34", "u2": "33.33", "u3": "33.33"},
		},
		{
			name:    "equal even split",
			payload: SplitPayload{Amount: 90, Strategy: StrategyEqual, Shares: ResolveEqual(roster("a", "b", "c"))},
			want:    map[string]string{"u1": "30", "u2": "30", "u3": "30"},
		},
		{
			name:    "percentage",
			payload: SplitPayload{Amount: 80, Strategy: StrategyPercentage, Shares: ShareTable{"u1": 60, "u2": 40}},
			want:    map[string]string{"u1": "48", "u2": "32"},
		},
		{
			name:    "percentage with rounding",
			payload: SplitPayload{Amount: 10, Strategy: StrategyPercentage, Shares: ShareTable{"u1": 33.33, "u2": 33.33, "u3": 33.34}},
			want:    map[string]string{"u1": "3.33", "u2": "3.33", "u3": "3.34"},
		},
		{
			name:    "custom is rounded only",
			payload: SplitPayload{Amount: 50, Strategy: StrategyCustom, Shares: ShareTable{"u1": 10.005, "u2": 20}},
			want:    map[string]string{"u1": "10.01", "u2": "20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(&tt.payload)
			assert.Len(t, got, len(tt.want))
			for id, want := range tt.want {
				assert.True(t, decimal.RequireFromString(want).Equal(got[id]), "%s: got %s want %s", id, got[id], want)
			}
		})
	}
}

func TestAllocate_PartsAddUpToAmount(t *testing.T) {
	amounts := []float64{0.01, 0.1, 1, 9.99, 10, 33.33, 100, 101.01, 1234.56}
	for n := 1; n <= 7; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		shares := ResolveEqual(roster(names...))
		for _, amount := range amounts {
			p := &SplitPayload{Amount: amount, Strategy: StrategyEqual, Shares: shares}
			got := sum(Allocate(p))
			assert.True(t, decimal.NewFromFloat(amount).Equal(got), "n=%d amount=%v got %s", n, amount, got)
		}
	}
}

func TestCustomRemainder(t *testing.T) {
	p := &SplitPayload{Amount: 100, Strategy: StrategyCustom, Shares: ShareTable{"u1": 30, "u2": 45.5}}
	rest, ok := CustomRemainder(p)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("24.5").Equal(rest))

	p.Shares["u3"] = 30
	rest, ok = CustomRemainder(p)
	require.True(t, ok)
	assert.True(t, rest.IsNegative())

	p.Shares["u3"] = math.Inf(1)
	_, ok = CustomRemainder(p)
	assert.False(t, ok, "non-finite share")
}
