package calculator

import (
	"slices"
	"strconv"

	"github.com/mmynk/groupspend/internal/models"
)

// nameIndex maps display name to member ID. The first roster entry wins when
// two members share a name.
func nameIndex(roster []models.Member) map[string]string {
	idx := make(map[string]string, len(roster))
	for _, m := range roster {
		if _, dup := idx[m.DisplayName]; !dup {
			idx[m.DisplayName] = m.ID
		}
	}
	return idx
}

// HydrateFromPersisted builds an edit-mode draft from a name-keyed persisted
// expense, using roster as the name to ID lookup.
//
// It never fails. A payer missing from the roster becomes Unresolved;
// participants and shares whose names are missing are dropped. Submission is
// where correctness is enforced.
func HydrateFromPersisted(e models.GroupExpense, roster []models.Member) ExpenseDraft {
	byName := nameIndex(roster)

	d := ExpenseDraft{
		Amount:      strconv.FormatFloat(e.Amount, 'f', -1, 64),
		Description: e.Description,
		Strategy:    Strategy(e.SplitMethod),
		PayerID:     Unresolved,
		Shares:      make(ShareTable, len(e.SplitDetails.Shares)),
		Roster:      slices.Clone(roster),
	}
	if !e.Date.IsZero() {
		y, m, day := e.Date.UTC().Date()
		d.Date = dateUTC(y, m, day)
	}

	if id, ok := byName[e.PaidBy]; ok {
		d.PayerID = id
	}

	paidFor := make(map[string]bool, len(e.PaidFor))
	for _, name := range e.PaidFor {
		paidFor[name] = true
	}
	// Roster order, so every member carrying a listed name is included.
	for _, m := range roster {
		if paidFor[m.DisplayName] {
			d.ParticipantIDs = append(d.ParticipantIDs, m.ID)
		}
	}

	for name, share := range e.SplitDetails.Shares {
		if id, ok := byName[name]; ok {
			d.Shares[id] = share
		}
	}

	return d
}

// ToPersisted converts a validated payload into the name-keyed persisted form.
// The payload must come from BuildSubmissionPayload against the same roster,
// so every member ID it names has a display name.
func ToPersisted(p *SplitPayload, roster []models.Member) models.GroupExpense {
	byID := make(map[string]string, len(roster))
	for _, m := range roster {
		byID[m.ID] = m.DisplayName
	}

	e := models.GroupExpense{
		Amount:      p.Amount,
		Description: p.Description,
		Date:        p.Date,
		PaidBy:      byID[p.PayerID],
		SplitMethod: string(p.Strategy),
		SplitDetails: models.SplitDetails{
			Payer:  byID[p.PayerID],
			Amount: p.Amount,
			Shares: make(map[string]float64, len(p.Shares)),
		},
	}
	for _, id := range p.ParticipantIDs {
		if name, ok := byID[id]; ok {
			e.PaidFor = append(e.PaidFor, name)
		}
	}
	for id, share := range p.Shares {
		if name, ok := byID[id]; ok {
			e.SplitDetails.Shares[name] = share
		}
	}
	return e
}
