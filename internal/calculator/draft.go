package calculator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/groupspend/internal/models"
)

// Unresolved is the payer ID given to a hydrated draft whose payer name is
// not on the roster. The payer must be re-selected before submission.
const Unresolved = "\x00unresolved"

// DateLayout is the calendar date format accepted by UpdateField.
const DateLayout = "2006-01-02"

// ExpenseDraft is an expense being edited and not yet submitted.
//
// Drafts are values: engine functions take a draft and return a new one,
// the caller decides where the current draft lives between calls.
type ExpenseDraft struct {
	// Amount is the raw amount as entered. Parsed at submission.
	Amount string

	Description string

	// Date is the calendar date; zero means "today" at submission.
	Date time.Time

	Strategy Strategy

	// PayerID is the member who fronted the money, "" or Unresolved if unset.
	PayerID string

	// ParticipantIDs are the members the expense was paid for.
	ParticipantIDs []string

	// Shares is the working share table, keyed by member ID.
	Shares ShareTable

	// Roster is the group's membership the draft was built against.
	Roster []models.Member
}

// NewDraft returns an empty draft for a new expense in a group with the given roster.
func NewDraft(roster []models.Member) ExpenseDraft {
	return ExpenseDraft{
		Strategy: StrategyEqual,
		Shares:   ShareTable{},
		Roster:   slices.Clone(roster),
	}
}

// HasPayer reports whether a real payer has been selected.
func (d ExpenseDraft) HasPayer() bool {
	return d.PayerID != "" && d.PayerID != Unresolved
}

// clone deep-copies the mutable parts of the draft.
func (d ExpenseDraft) clone() ExpenseDraft {
	d.ParticipantIDs = slices.Clone(d.ParticipantIDs)
	d.Shares = d.Shares.Clone()
	d.Roster = slices.Clone(d.Roster)
	return d
}

// Field names a draft field that UpdateField can change.
type Field string

const (
	FieldAmount      Field = "amount"
	FieldDescription Field = "description"
	FieldDate        Field = "date"
	FieldStrategy    Field = "strategy"
	FieldPayer       Field = "payer"
	FieldParticipant Field = "participant"
	FieldShare       Field = "share"
)

// FieldUpdate is one user edit. MemberID is used by the participant and share fields.
type FieldUpdate struct {
	Field    Field
	MemberID string
	Value    string
}

// UpdateField applies u to a copy of d and returns the copy. d is not modified.
//
// The participant field toggles MemberID in or out of the participant set and
// ignores Value.
func UpdateField(d ExpenseDraft, u FieldUpdate) (ExpenseDraft, error) {
	next := d.clone()
	switch u.Field {
	case FieldAmount:
		next.Amount = strings.TrimSpace(u.Value)
	case FieldDescription:
		next.Description = u.Value
	case FieldDate:
		if strings.TrimSpace(u.Value) == "" {
			next.Date = time.Time{}
			break
		}
		date, err := time.Parse(DateLayout, strings.TrimSpace(u.Value))
		if err != nil {
			return d, newValidationError(ReasonInvalidField, fmt.Sprintf("date %q", u.Value))
		}
		next.Date = date
	case FieldStrategy:
		next.Strategy = Strategy(u.Value)
	case FieldPayer:
		next.PayerID = u.Value
	case FieldParticipant:
		if u.MemberID == "" {
			return d, newValidationError(ReasonInvalidField, "participant requires a member id")
		}
		if i := slices.Index(next.ParticipantIDs, u.MemberID); i >= 0 {
			next.ParticipantIDs = slices.Delete(next.ParticipantIDs, i, i+1)
		} else {
			next.ParticipantIDs = append(next.ParticipantIDs, u.MemberID)
		}
	case FieldShare:
		if u.MemberID == "" {
			return d, newValidationError(ReasonInvalidField, "share requires a member id")
		}
		share, err := strconv.ParseFloat(strings.TrimSpace(u.Value), 64)
		if err != nil || !finite(share) {
			return d, newValidationError(ReasonInvalidField, fmt.Sprintf("share %q", u.Value))
		}
		next.Shares[u.MemberID] = share
	default:
		return d, newValidationError(ReasonInvalidField, fmt.Sprintf("unknown field %q", string(u.Field)))
	}
	return next, nil
}
