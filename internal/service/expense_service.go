package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupspend/internal/calculator"
	"github.com/mmynk/groupspend/internal/events"
	"github.com/mmynk/groupspend/internal/models"
	"github.com/mmynk/groupspend/internal/storage"
	"github.com/mmynk/groupspend/pkg/api"
	"github.com/mmynk/groupspend/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService. It is the only caller
// of the split engine: drafts arrive keyed by member ID, are validated against
// the group's current roster and are stored keyed by display name.
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store     storage.Store
	publisher events.Publisher
	now       func() time.Time
}

// NewExpenseService creates a new ExpenseService. A nil publisher disables events.
func NewExpenseService(store storage.Store, publisher events.Publisher) *ExpenseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ExpenseService{store: store, publisher: publisher, now: time.Now}
}

// HydrateDraft loads a stored expense into an editable draft.
func (s *ExpenseService) HydrateDraft(ctx context.Context, req *connect.Request[api.HydrateDraftRequest]) (*connect.Response[api.HydrateDraftResponse], error) {
	slog.Info("HydrateDraft request received", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	_, roster, err := s.authorize(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	expense, err := s.store.GetGroupExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("HydrateDraft failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}

	draft := calculator.HydrateFromPersisted(*expense, roster)
	unresolved := draft.PayerID == calculator.Unresolved
	if unresolved {
		slog.Warn("Stored payer is no longer a member", "expense_id", expense.ID, "paid_by", expense.PaidBy)
	}

	return connect.NewResponse(&api.HydrateDraftResponse{
		Draft:           draftToAPI(draft),
		PayerUnresolved: unresolved,
		Roster:          toAPIMembers(roster),
	}), nil
}

// UpdateDraft applies form edits to a draft in order and returns the result.
// The first failing edit aborts the call.
func (s *ExpenseService) UpdateDraft(ctx context.Context, req *connect.Request[api.UpdateDraftRequest]) (*connect.Response[api.UpdateDraftResponse], error) {
	slog.Debug("UpdateDraft request received", "group_id", req.Msg.GroupID, "updates", len(req.Msg.Updates))

	_, roster, err := s.authorize(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	draft, err := draftFromAPI(req.Msg.Draft, roster)
	if err != nil {
		return nil, splitError(err)
	}
	for _, u := range req.Msg.Updates {
		if u == nil {
			continue
		}
		draft, err = calculator.UpdateField(draft, calculator.FieldUpdate{
			Field:    calculator.Field(u.Field),
			MemberID: u.MemberID,
			Value:    u.Value,
		})
		if err != nil {
			return nil, splitError(err)
		}
	}

	return connect.NewResponse(&api.UpdateDraftResponse{Draft: draftToAPI(draft)}), nil
}

// PreviewSplit resolves the draft's share table without saving anything.
// Amounts are filled in only when the draft's amount is valid.
func (s *ExpenseService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	slog.Debug("PreviewSplit request received", "group_id", req.Msg.GroupID)

	_, roster, err := s.authorize(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	draft, err := draftFromAPI(req.Msg.Draft, roster)
	if err != nil {
		return nil, splitError(err)
	}
	shares, err := calculator.ResolveShares(draft)
	if err != nil {
		return nil, splitError(err)
	}
	if err := calculator.CheckMembers(roster, draft.ParticipantIDs, shares); err != nil {
		return nil, splitError(err)
	}

	resp := &api.PreviewSplitResponse{
		Shares:  shares,
		Amounts: map[string]string{},
	}
	if amount, err := calculator.ParseAmount(draft.Amount); err == nil {
		payload := &calculator.SplitPayload{Amount: amount, Strategy: draft.Strategy, Shares: shares}
		resp.Amounts = amountsToAPI(calculator.Allocate(payload))
		resp.Unallocated = unallocated(payload)
	}
	return connect.NewResponse(resp), nil
}

// CreateExpense validates a draft and records it.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received", "group_id", req.Msg.GroupID)

	userID, roster, err := s.authorize(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	payload, err := s.submit(req.Msg.Draft, roster)
	if err != nil {
		return nil, err
	}

	expense := calculator.ToPersisted(payload, roster)
	expense.GroupID = req.Msg.GroupID
	expense.CreatedBy = userID
	if err := s.store.CreateGroupExpense(ctx, &expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}
	s.publish(ctx, events.ExpenseCreated, &expense, userID)

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"split_method", expense.SplitMethod,
	)
	out := toAPIExpense(&expense)
	out.CreatedByName = displayName(roster, userID)
	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense: out,
		Amounts: amountsToAPI(calculator.Allocate(payload)),
	}), nil
}

// EditExpense validates a draft and replaces a stored expense with it.
func (s *ExpenseService) EditExpense(ctx context.Context, req *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error) {
	slog.Info("EditExpense request received", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	userID, roster, err := s.authorize(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetGroupExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("EditExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}

	payload, err := s.submit(req.Msg.Draft, roster)
	if err != nil {
		return nil, err
	}

	expense := calculator.ToPersisted(payload, roster)
	expense.ID = existing.ID
	expense.GroupID = existing.GroupID
	expense.CreatedBy = existing.CreatedBy
	expense.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateGroupExpense(ctx, &expense); err != nil {
		slog.Error("EditExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}
	s.publish(ctx, events.ExpenseUpdated, &expense, userID)

	slog.Info("Expense updated", "expense_id", expense.ID, "amount", expense.Amount)
	out := toAPIExpense(&expense)
	out.CreatedByName = s.creatorNames(ctx, []*models.GroupExpense{&expense})[expense.CreatedBy]
	return connect.NewResponse(&api.EditExpenseResponse{
		Expense: out,
		Amounts: amountsToAPI(calculator.Allocate(payload)),
	}), nil
}

// GetExpense returns a stored expense.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	slog.Info("GetExpense request received", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	if _, _, err := s.authorize(ctx, req.Msg, req.Msg.GroupID); err != nil {
		return nil, err
	}

	expense, err := s.store.GetGroupExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}

	out := toAPIExpense(expense)
	out.CreatedByName = s.creatorNames(ctx, []*models.GroupExpense{expense})[expense.CreatedBy]
	return connect.NewResponse(&api.GetExpenseResponse{Expense: out}), nil
}

// ListExpenses returns a group's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	if _, _, err := s.authorize(ctx, req.Msg, req.Msg.GroupID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListGroupExpenses(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	names := s.creatorNames(ctx, expenses)
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
		out[i].CreatedByName = names[e.CreatedBy]
	}

	slog.Info("ListExpenses successful", "group_id", req.Msg.GroupID, "count", len(out))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes a stored expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	userID, _, err := s.authorize(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	expense, err := s.store.GetGroupExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := s.store.DeleteGroupExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}
	s.publish(ctx, events.ExpenseDeleted, expense, userID)

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// authorize validates msg and returns the caller's ID and the group's current
// roster, which the caller must be on.
func (s *ExpenseService) authorize(ctx context.Context, msg any, groupID string) (string, []models.Member, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return "", nil, err
	}
	if err := validateRequest(msg); err != nil {
		return "", nil, err
	}
	roster, err := memberRoster(ctx, s.store, groupID, userID)
	if err != nil {
		return "", nil, err
	}
	return userID, roster, nil
}

// submit runs the submission validator on a wire draft, then checks the
// description.
func (s *ExpenseService) submit(in *api.Draft, roster []models.Member) (*calculator.SplitPayload, error) {
	draft, err := draftFromAPI(in, roster)
	if err != nil {
		return nil, splitError(err)
	}
	payload, err := calculator.BuildSubmissionPayload(draft, s.now())
	if err != nil {
		slog.Warn("Draft rejected", "reason", calculator.ReasonOf(err), "error", err)
		return nil, splitError(err)
	}
	if err := validateDescription(payload.Description); err != nil {
		return nil, err
	}
	return payload, nil
}

// publish emits an expense event. Failures are logged and never fail the RPC.
func (s *ExpenseService) publish(ctx context.Context, kind events.Kind, e *models.GroupExpense, actorID string) {
	if err := s.publisher.PublishExpense(ctx, events.NewExpenseEvent(kind, e, actorID)); err != nil {
		slog.Error("Failed to publish expense event", "kind", kind, "expense_id", e.ID, "error", err)
	}
}

// creatorNames resolves CreatedBy IDs to usernames. Creators who have since
// deleted their account are left out; lookup failures only cost the names.
func (s *ExpenseService) creatorNames(ctx context.Context, expenses []*models.GroupExpense) map[string]string {
	ids := make([]string, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.CreatedBy)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.Warn("Failed to resolve expense creators", "error", err)
		return nil
	}
	names := make(map[string]string, len(users))
	for id, u := range users {
		names[id] = u.Username
	}
	return names
}

func displayName(roster []models.Member, id string) string {
	for _, m := range roster {
		if m.ID == id {
			return m.DisplayName
		}
	}
	return ""
}

// unallocated reports the part of a custom payload's amount not covered by
// its shares. Equal and percentage payloads are always fully allocated.
func unallocated(p *calculator.SplitPayload) string {
	if p.Strategy != calculator.StrategyCustom {
		return decimal.Zero.StringFixed(2)
	}
	rest, ok := calculator.CustomRemainder(p)
	if !ok {
		return ""
	}
	return rest.Round(2).StringFixed(2)
}
