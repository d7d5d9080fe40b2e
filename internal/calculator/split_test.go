package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/groupspend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster(names ...string) []models.Member {
	members := make([]models.Member, len(names))
	for i, name := range names {
		members[i] = models.Member{ID: "u" + string(rune('1'+i)), DisplayName: name, Contact: name + "@example.com"}
	}
	return members
}

func TestResolveEqual(t *testing.T) {
	for n := 1; n <= 7; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		members := roster(names...)

		shares := ResolveEqual(members)
		require.Len(t, shares, n)

		sum := 0.0
		for _, m := range members {
			assert.Equal(t, 100/float64(n), shares[m.ID])
			sum += shares[m.ID]
		}
		// Tolerance for 100/n accumulated n times.
		assert.InDelta(t, 100, sum, 1e-9, "n=%d", n)
	}
}

func TestResolveEqual_SingleMemberGetsEverything(t *testing.T) {
	shares := ResolveEqual(roster("alice"))
	assert.Equal(t, ShareTable{"u1": 100}, shares)
}

func TestResolveEqual_EmptyRoster(t *testing.T) {
	assert.Empty(t, ResolveEqual(nil))
}

func TestResolvePercentage(t *testing.T) {
	tests := []struct {
		name    string
		shares  ShareTable
		wantErr bool
	}{
		{name: "exact hundred", shares: ShareTable{"u1": 60, "u2": 40}},
		{name: "thirds in cents", shares: ShareTable{"u1": 33.33, "u2": 33.33, "u3": 33.34}},
		{name: "tenths that drift in binary", shares: ShareTable{"u1": 70.1, "u2": 29.9}},
		{name: "ninety", shares: ShareTable{"u1": 60, "u2": 30}, wantErr: true},
		{name: "just over", shares: ShareTable{"u1": 50, "u2": 50.0001}, wantErr: true},
		{name: "just under", shares: ShareTable{"u1": 50, "u2": 49.9999}, wantErr: true},
		{name: "empty", shares: ShareTable{}, wantErr: true},
		{name: "nan share", shares: ShareTable{"u1": math.NaN(), "u2": 100}, wantErr: true},
		{name: "infinite share", shares: ShareTable{"u1": math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePercentage(tt.shares)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsReason(err, ReasonSumMismatch), "got reason %q", ReasonOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.shares, got)
		})
	}
}

func TestResolveCustom_Identity(t *testing.T) {
	shares := ShareTable{"u1": 12.5, "u2": 7, "u3": 0}
	got := ResolveCustom(shares)
	assert.Equal(t, shares, got)

	got["u1"] = 99
	assert.Equal(t, 12.5, shares["u1"], "result must not alias the input")
}

func TestResolveShares_Dispatch(t *testing.T) {
	members := roster("alice", "bob")

	t.Run("equal ignores working shares", func(t *testing.T) {
		d := ExpenseDraft{Strategy: StrategyEqual, Roster: members, Shares: ShareTable{"u1": 1}}
		got, err := ResolveShares(d)
		require.NoError(t, err)
		assert.Equal(t, ShareTable{"u1": 50, "u2": 50}, got)
	})

	t.Run("percentage validates", func(t *testing.T) {
		d := ExpenseDraft{Strategy: StrategyPercentage, Roster: members, Shares: ShareTable{"u1": 10}}
		_, err := ResolveShares(d)
		assert.True(t, IsReason(err, ReasonSumMismatch))
	})

	t.Run("custom passes through", func(t *testing.T) {
		d := ExpenseDraft{Strategy: StrategyCustom, Roster: members, Shares: ShareTable{"u1": 3, "u2": 4}}
		got, err := ResolveShares(d)
		require.NoError(t, err)
		assert.Equal(t, ShareTable{"u1": 3, "u2": 4}, got)
	})

	t.Run("unknown strategy is rejected", func(t *testing.T) {
		for _, s := range []Strategy{"", "Equal", "shares", "exact"} {
			_, err := ResolveShares(ExpenseDraft{Strategy: s, Roster: members})
			assert.True(t, IsReason(err, ReasonUnknownStrategy), "strategy %q", s)
		}
	})
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"equal", "percentage", "custom"} {
		s, err := ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, Strategy(name), s)
	}
	_, err := ParseStrategy("weighted")
	assert.True(t, IsReason(err, ReasonUnknownStrategy))
}
