package calculator

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/groupspend/internal/models"
)

// SplitPayload is a validated expense ready to hand to persistence.
type SplitPayload struct {
	Amount         float64
	Description    string
	Date           time.Time
	PayerID        string
	ParticipantIDs []string
	Strategy       Strategy
	Shares         ShareTable
}

// BuildSubmissionPayload validates the draft and produces its payload.
//
// Checks run in order and stop at the first failure: payer, amount,
// strategy resolution, then membership of every participant and share key.
// A zero draft date becomes now's calendar date. Description is not checked
// here.
func BuildSubmissionPayload(d ExpenseDraft, now time.Time) (*SplitPayload, error) {
	if !d.HasPayer() {
		return nil, newValidationError(ReasonNoPayer, "select who paid")
	}
	if !onRoster(d.Roster, d.PayerID) {
		return nil, newValidationError(ReasonNoPayer, fmt.Sprintf("payer %q is not a group member", d.PayerID))
	}

	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return nil, err
	}

	shares, err := ResolveShares(d)
	if err != nil {
		return nil, err
	}
	if err := CheckMembers(d.Roster, d.ParticipantIDs, shares); err != nil {
		return nil, err
	}

	date := d.Date
	if date.IsZero() {
		y, m, day := now.UTC().Date()
		date = dateUTC(y, m, day)
	}

	return &SplitPayload{
		Amount:         amount,
		Description:    d.Description,
		Date:           date,
		PayerID:        d.PayerID,
		ParticipantIDs: slices.Clone(d.ParticipantIDs),
		Strategy:       d.Strategy,
		Shares:         shares,
	}, nil
}

// ParseAmount parses a raw amount, which must be a positive finite number.
func ParseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, newValidationError(ReasonInvalidAmount, fmt.Sprintf("%q", raw))
	}
	return amount, nil
}

// CheckMembers rejects participants and share keys that are not on the
// roster, and shares that are not finite numbers.
func CheckMembers(roster []models.Member, participantIDs []string, shares ShareTable) error {
	for _, id := range participantIDs {
		if !onRoster(roster, id) {
			return newValidationError(ReasonInvalidField, fmt.Sprintf("participant %q is not a group member", id))
		}
	}
	for _, id := range slices.Sorted(maps.Keys(shares)) {
		if !onRoster(roster, id) {
			return newValidationError(ReasonInvalidField, fmt.Sprintf("share for %q: not a group member", id))
		}
		if !finite(shares[id]) {
			return newValidationError(ReasonInvalidField, fmt.Sprintf("share for %q: not a number", id))
		}
	}
	return nil
}

func onRoster(roster []models.Member, id string) bool {
	return slices.ContainsFunc(roster, func(m models.Member) bool { return m.ID == id })
}

func dateUTC(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
