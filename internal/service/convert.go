package service

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupspend/internal/calculator"
	"github.com/mmynk/groupspend/internal/models"
	"github.com/mmynk/groupspend/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toAPIMembers(roster []models.Member) []*api.Member {
	out := make([]*api.Member, len(roster))
	for i, m := range roster {
		out[i] = &api.Member{ID: m.ID, DisplayName: m.DisplayName, Contact: m.Contact}
	}
	return out
}

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		OwnerID:   g.OwnerID,
		Members:   toAPIMembers(g.Members),
		CreatedAt: g.CreatedAt,
	}
}

func toAPIExpense(e *models.GroupExpense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date.Format(calculator.DateLayout),
		PaidBy:      e.PaidBy,
		PaidFor:     slices.Clone(e.PaidFor),
		SplitMethod: e.SplitMethod,
		Shares:      maps.Clone(e.SplitDetails.Shares),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// draftFromAPI rebuilds an engine draft from its wire form against roster.
// The date goes through UpdateField so a malformed date is reported as an
// invalid field.
func draftFromAPI(in *api.Draft, roster []models.Member) (calculator.ExpenseDraft, error) {
	d := calculator.NewDraft(roster)
	d.Amount = in.Amount
	d.Description = in.Description
	d.Strategy = calculator.Strategy(in.Strategy)
	d.PayerID = in.PayerID
	d.ParticipantIDs = slices.Clone(in.ParticipantIDs)
	for id, share := range in.Shares {
		d.Shares[id] = share
	}
	return calculator.UpdateField(d, calculator.FieldUpdate{Field: calculator.FieldDate, Value: in.Date})
}

// draftToAPI is the inverse of draftFromAPI. The Unresolved sentinel is sent
// as an empty payer.
func draftToAPI(d calculator.ExpenseDraft) *api.Draft {
	out := &api.Draft{
		Amount:         d.Amount,
		Description:    d.Description,
		Strategy:       string(d.Strategy),
		PayerID:        d.PayerID,
		ParticipantIDs: slices.Clone(d.ParticipantIDs),
		Shares:         maps.Clone(map[string]float64(d.Shares)),
	}
	if out.PayerID == calculator.Unresolved {
		out.PayerID = ""
	}
	if out.ParticipantIDs == nil {
		out.ParticipantIDs = []string{}
	}
	if out.Shares == nil {
		out.Shares = map[string]float64{}
	}
	if !d.Date.IsZero() {
		out.Date = d.Date.Format(calculator.DateLayout)
	}
	return out
}

func amountsToAPI(amounts map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(amounts))
	for id, amount := range amounts {
		out[id] = amount.StringFixed(2)
	}
	return out
}
