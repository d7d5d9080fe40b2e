package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft(t *testing.T) {
	members := roster("alice", "bob")
	d := NewDraft(members)

	assert.Equal(t, StrategyEqual, d.Strategy)
	assert.Empty(t, d.PayerID)
	assert.NotNil(t, d.Shares)
	assert.Equal(t, members, d.Roster)
	assert.False(t, d.HasPayer())
}

func TestUpdateField(t *testing.T) {
	base := NewDraft(roster("alice", "bob", "carol"))

	tests := []struct {
		name  string
		u     FieldUpdate
		check func(t *testing.T, d ExpenseDraft)
	}{
		{
			name:  "amount is trimmed",
			u:     FieldUpdate{Field: FieldAmount, Value: " 42.10 "},
			check: func(t *testing.T, d ExpenseDraft) { assert.Equal(t, "42.10", d.Amount) },
		},
		{
			name:  "description",
			u:     FieldUpdate{Field: FieldDescription, Value: "Taxi"},
			check: func(t *testing.T, d ExpenseDraft) { assert.Equal(t, "Taxi", d.Description) },
		},
		{
			name: "date",
			u:    FieldUpdate{Field: FieldDate, Value: "2024-02-29"},
			check: func(t *testing.T, d ExpenseDraft) {
				assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d.Date)
			},
		},
		{
			name:  "strategy is stored verbatim",
			u:     FieldUpdate{Field: FieldStrategy, Value: "whatever"},
			check: func(t *testing.T, d ExpenseDraft) { assert.Equal(t, Strategy("whatever"), d.Strategy) },
		},
		{
			name:  "payer",
			u:     FieldUpdate{Field: FieldPayer, Value: "u2"},
			check: func(t *testing.T, d ExpenseDraft) { assert.Equal(t, "u2", d.PayerID) },
		},
		{
			name:  "participant toggles on",
			u:     FieldUpdate{Field: FieldParticipant, MemberID: "u3"},
			check: func(t *testing.T, d ExpenseDraft) { assert.Equal(t, []string{"u3"}, d.ParticipantIDs) },
		},
		{
			name:  "share",
			u:     FieldUpdate{Field: FieldShare, MemberID: "u1", Value: "33.5"},
			check: func(t *testing.T, d ExpenseDraft) { assert.Equal(t, ShareTable{"u1": 33.5}, d.Shares) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UpdateField(base, tt.u)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}

	assert.Empty(t, base.ParticipantIDs, "base draft must not change")
	assert.Empty(t, base.Shares, "base draft must not change")
}

func TestUpdateField_ParticipantToggle(t *testing.T) {
	d := NewDraft(roster("alice", "bob"))

	var err error
	for _, id := range []string{"u1", "u2", "u1"} {
		d, err = UpdateField(d, FieldUpdate{Field: FieldParticipant, MemberID: id})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"u2"}, d.ParticipantIDs)
}

func TestUpdateField_DoesNotMutateInput(t *testing.T) {
	d := validDraft()
	d.Shares = ShareTable{"u1": 10}

	next, err := UpdateField(d, FieldUpdate{Field: FieldShare, MemberID: "u1", Value: "90"})
	require.NoError(t, err)
	next, err = UpdateField(next, FieldUpdate{Field: FieldParticipant, MemberID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 10.0, d.Shares["u1"])
	assert.Equal(t, []string{"u1", "u2"}, d.ParticipantIDs)
	assert.Equal(t, 90.0, next.Shares["u1"])
	assert.Equal(t, []string{"u2"}, next.ParticipantIDs)
}

func TestUpdateField_ClearDate(t *testing.T) {
	d := validDraft()
	d.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	next, err := UpdateField(d, FieldUpdate{Field: FieldDate, Value: ""})
	require.NoError(t, err)
	assert.True(t, next.Date.IsZero())
}

func TestUpdateField_Errors(t *testing.T) {
	d := validDraft()
	bad := []FieldUpdate{
		{Field: FieldDate, Value: "03/09/2024"},
		{Field: FieldShare, MemberID: "u1", Value: "ten"},
		{Field: FieldShare, MemberID: "u1", Value: "NaN"},
		{Field: FieldShare, MemberID: "u1", Value: "Inf"},
		{Field: FieldShare, MemberID: "u1", Value: "-Infinity"},
		{Field: FieldShare, MemberID: "u1", Value: "1e400"},
		{Field: FieldShare, Value: "10"},
		{Field: FieldParticipant},
		{Field: "colour", Value: "red"},
	}
	for _, u := range bad {
		got, err := UpdateField(d, u)
		assert.True(t, IsReason(err, ReasonInvalidField), "update %+v", u)
		assert.Equal(t, d, got, "failed update returns the original draft")
	}
}
