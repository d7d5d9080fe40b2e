package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 22, 15, 0, 0, time.UTC)

func validDraft() ExpenseDraft {
	d := NewDraft(roster("alice", "bob"))
	d.Amount = "100"
	d.Description = "Dinner"
	d.PayerID = "u1"
	d.ParticipantIDs = []string{"u1", "u2"}
	return d
}

func TestBuildSubmissionPayload_Equal(t *testing.T) {
	p, err := BuildSubmissionPayload(validDraft(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, 100.0, p.Amount)
	assert.Equal(t, "Dinner", p.Description)
	assert.Equal(t, "u1", p.PayerID)
	assert.Equal(t, []string{"u1", "u2"}, p.ParticipantIDs)
	assert.Equal(t, StrategyEqual, p.Strategy)
	assert.Equal(t, ShareTable{"u1": 50, "u2": 50}, p.Shares)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), p.Date, "unset date defaults to today")
}

func TestBuildSubmissionPayload_KeepsExplicitDate(t *testing.T) {
	d := validDraft()
	d.Date = time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)

	p, err := BuildSubmissionPayload(d, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, d.Date, p.Date)
}

func TestBuildSubmissionPayload_PercentageSumMismatch(t *testing.T) {
	d := validDraft()
	d.Strategy = StrategyPercentage
	d.Shares = ShareTable{"u1": 60, "u2": 30}

	_, err := BuildSubmissionPayload(d, fixedNow)
	require.Error(t, err)
	assert.Equal(t, ReasonSumMismatch, ReasonOf(err))
}

func TestBuildSubmissionPayload_CustomUnchecked(t *testing.T) {
	d := validDraft()
	d.Strategy = StrategyCustom
	d.Shares = ShareTable{"u1": 1, "u2": 2}

	p, err := BuildSubmissionPayload(d, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, ShareTable{"u1": 1, "u2": 2}, p.Shares)
}

func TestBuildSubmissionPayload_ValidationOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *ExpenseDraft)
		want   Reason
	}{
		{
			name:   "empty payer beats broken strategy and amount",
			mutate: func(d *ExpenseDraft) { d.PayerID = ""; d.Amount = "x"; d.Strategy = "bogus" },
			want:   ReasonNoPayer,
		},
		{
			name: "sentinel payer beats percentage mismatch",
			mutate: func(d *ExpenseDraft) {
				d.PayerID = Unresolved
				d.Strategy = StrategyPercentage
				d.Shares = ShareTable{"u1": 1}
			},
			want: ReasonNoPayer,
		},
		{
			name:   "payer not on roster",
			mutate: func(d *ExpenseDraft) { d.PayerID = "u9" },
			want:   ReasonNoPayer,
		},
		{
			name:   "amount beats strategy",
			mutate: func(d *ExpenseDraft) { d.Amount = "0"; d.Strategy = "bogus" },
			want:   ReasonInvalidAmount,
		},
		{
			name:   "unknown strategy",
			mutate: func(d *ExpenseDraft) { d.Strategy = "bogus" },
			want:   ReasonUnknownStrategy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := BuildSubmissionPayload(d, fixedNow)
			assert.Equal(t, tt.want, ReasonOf(err))
		})
	}
}

func TestBuildSubmissionPayload_RejectsNonMembers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *ExpenseDraft)
	}{
		{
			name: "percentage share for a stranger",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = StrategyPercentage
				d.Shares = ShareTable{"u1": 50, "ghost": 50}
			},
		},
		{
			name: "custom share for a stranger",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = StrategyCustom
				d.Shares = ShareTable{"u1": 60, "ghost": 40}
			},
		},
		{
			name:   "stranger among participants",
			mutate: func(d *ExpenseDraft) { d.ParticipantIDs = append(d.ParticipantIDs, "ghost") },
		},
		{
			name: "non-finite custom share",
			mutate: func(d *ExpenseDraft) {
				d.Strategy = StrategyCustom
				d.Shares = ShareTable{"u1": math.NaN()}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := BuildSubmissionPayload(d, fixedNow)
			assert.Equal(t, ReasonInvalidField, ReasonOf(err))
		})
	}
}

func TestBuildSubmissionPayload_EqualIgnoresStaleShares(t *testing.T) {
	d := validDraft()
	d.Shares = ShareTable{"ghost": 100}

	p, err := BuildSubmissionPayload(d, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, ShareTable{"u1": 50, "u2": 50}, p.Shares)
}

func TestParseAmount(t *testing.T) {
	valid := map[string]float64{"100": 100, " 12.5 ": 12.5, "0.01": 0.01, "1e3": 1000}
	for raw, want := range valid {
		got, err := ParseAmount(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "abc", "0", "-5", "NaN", "Inf", "-Inf", "1e400", "12,50"} {
		_, err := ParseAmount(raw)
		assert.True(t, IsReason(err, ReasonInvalidAmount), "raw %q", raw)
	}
}

func TestSplitValidationError_Message(t *testing.T) {
	err := &SplitValidationError{Reason: ReasonNoPayer}
	assert.Equal(t, "split validation failed: no payer", err.Error())

	err = &SplitValidationError{Reason: ReasonInvalidAmount, Detail: `"x"`}
	assert.Equal(t, `split validation failed: invalid amount: "x"`, err.Error())

	assert.Equal(t, Reason(""), ReasonOf(assert.AnError))
}

func TestReason_Code(t *testing.T) {
	assert.Equal(t, "sum_mismatch", ReasonSumMismatch.Code())
	assert.Equal(t, "no_payer", ReasonNoPayer.Code())
	assert.Equal(t, "unknown", Reason("bogus").Code())
}
