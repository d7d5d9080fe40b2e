package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupspend/internal/calculator"
	"github.com/mmynk/groupspend/internal/models"
	"github.com/mmynk/groupspend/internal/storage"
	"github.com/mmynk/groupspend/pkg/api"
	"github.com/mmynk/groupspend/pkg/api/apiconnect"
)

const monthLayout = "2006-01"

// PersonalService implements the Connect PersonalService: the caller's own
// expenses and the monthly budget they are measured against. Nothing here is
// visible to other users.
type PersonalService struct {
	apiconnect.UnimplementedPersonalServiceHandler
	store storage.PersonalStore
	now   func() time.Time
}

// NewPersonalService creates a new PersonalService with the given storage backend.
func NewPersonalService(store storage.PersonalStore) *PersonalService {
	return &PersonalService{store: store, now: time.Now}
}

// CreatePersonalExpense records an expense for the caller. An empty date means today.
func (s *PersonalService) CreatePersonalExpense(ctx context.Context, req *connect.Request[api.CreatePersonalExpenseRequest]) (*connect.Response[api.CreatePersonalExpenseResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreatePersonalExpense request received", "user_id", userID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	amount, err := parseMoney("amount", req.Msg.Amount, false)
	if err != nil {
		return nil, err
	}
	date := s.today()
	if req.Msg.Date != "" {
		date, _ = time.Parse(calculator.DateLayout, req.Msg.Date)
	}

	expense := &models.PersonalExpense{
		UserID: userID,
		Amount: amount.InexactFloat64(),
		Name:   strings.TrimSpace(req.Msg.Name),
		Date:   date,
	}
	if err := s.store.CreatePersonalExpense(ctx, expense); err != nil {
		slog.Error("CreatePersonalExpense failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Personal expense created", "expense_id", expense.ID)
	return connect.NewResponse(&api.CreatePersonalExpenseResponse{Expense: toAPIPersonalExpense(expense)}), nil
}

// ListPersonalExpenses returns the caller's expenses, newest first, with their total.
func (s *PersonalService) ListPersonalExpenses(ctx context.Context, req *connect.Request[api.ListPersonalExpensesRequest]) (*connect.Response[api.ListPersonalExpensesResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("ListPersonalExpenses request received", "user_id", userID, "month", req.Msg.Month)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var from, to time.Time
	if req.Msg.Month != "" {
		from, to = monthRange(req.Msg.Month)
	}
	expenses, err := s.store.ListPersonalExpenses(ctx, userID, from, to)
	if err != nil {
		slog.Error("ListPersonalExpenses failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}

	resp := &api.ListPersonalExpensesResponse{
		Expenses: make([]*api.PersonalExpense, len(expenses)),
		Total:    totalSpent(expenses).StringFixed(2),
	}
	for i, e := range expenses {
		resp.Expenses[i] = toAPIPersonalExpense(e)
	}
	return connect.NewResponse(resp), nil
}

// EditPersonalExpense replaces an expense's amount, name and date. An empty
// date keeps the stored one.
func (s *PersonalService) EditPersonalExpense(ctx context.Context, req *connect.Request[api.EditPersonalExpenseRequest]) (*connect.Response[api.EditPersonalExpenseResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("EditPersonalExpense request received", "user_id", userID, "expense_id", req.Msg.ExpenseID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	amount, err := parseMoney("amount", req.Msg.Amount, false)
	if err != nil {
		return nil, err
	}

	expense, err := s.store.GetPersonalExpense(ctx, userID, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError(err)
	}
	expense.Amount = amount.InexactFloat64()
	expense.Name = strings.TrimSpace(req.Msg.Name)
	if req.Msg.Date != "" {
		expense.Date, _ = time.Parse(calculator.DateLayout, req.Msg.Date)
	}

	if err := s.store.UpdatePersonalExpense(ctx, expense); err != nil {
		slog.Error("EditPersonalExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.EditPersonalExpenseResponse{Expense: toAPIPersonalExpense(expense)}), nil
}

// DeletePersonalExpense removes one of the caller's expenses.
func (s *PersonalService) DeletePersonalExpense(ctx context.Context, req *connect.Request[api.DeletePersonalExpenseRequest]) (*connect.Response[api.DeletePersonalExpenseResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeletePersonalExpense request received", "user_id", userID, "expense_id", req.Msg.ExpenseID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.DeletePersonalExpense(ctx, userID, req.Msg.ExpenseID); err != nil {
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.DeletePersonalExpenseResponse{}), nil
}

// GetBudget measures a month's personal spending against the caller's budget.
func (s *PersonalService) GetBudget(ctx context.Context, req *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	budget, err := s.budget(ctx, userID, req.Msg.Month)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetBudgetResponse{Budget: budget}), nil
}

// UpdateBudget replaces the caller's monthly budget and reports the current month against it.
func (s *PersonalService) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateBudget request received", "user_id", userID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	amount, err := parseMoney("budget", req.Msg.Budget, true)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetMonthlyBudget(ctx, userID, amount.InexactFloat64()); err != nil {
		slog.Error("UpdateBudget failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}

	budget, err := s.budget(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.UpdateBudgetResponse{Budget: budget}), nil
}

func (s *PersonalService) budget(ctx context.Context, userID, month string) (*api.Budget, error) {
	if month == "" {
		month = s.now().UTC().Format(monthLayout)
	}
	limit, err := s.store.GetMonthlyBudget(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	from, to := monthRange(month)
	expenses, err := s.store.ListPersonalExpenses(ctx, userID, from, to)
	if err != nil {
		return nil, storeError(err)
	}

	total := decimal.NewFromFloat(limit).Round(2)
	spent := totalSpent(expenses)
	return &api.Budget{
		Month:     month,
		Budget:    total.StringFixed(2),
		Spent:     spent.StringFixed(2),
		Remaining: total.Sub(spent).StringFixed(2),
	}, nil
}

func (s *PersonalService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseMoney parses a decimal amount and rounds it to cents. The amount must
// be positive, or non-negative when zero is allowed.
func parseMoney(field, raw string, allowZero bool) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err == nil && (amount.IsPositive() || (allowZero && amount.IsZero())) {
		return amount.Round(2), nil
	}
	if err == nil {
		err = errors.New("must be positive")
		if allowZero {
			err = errors.New("must not be negative")
		}
	}
	return decimal.Zero, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s %q: %w", field, raw, err))
}

// monthRange returns the first day of month and the first day of the next
// one. month has already been validated as YYYY-MM.
func monthRange(month string) (from, to time.Time) {
	from, _ = time.Parse(monthLayout, month)
	return from, from.AddDate(0, 1, 0)
}

func totalSpent(expenses []*models.PersonalExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount).Round(2))
	}
	return total
}

func toAPIPersonalExpense(e *models.PersonalExpense) *api.PersonalExpense {
	return &api.PersonalExpense{
		ID:        e.ID,
		Amount:    decimal.NewFromFloat(e.Amount).StringFixed(2),
		Name:      e.Name,
		Date:      e.Date.Format(calculator.DateLayout),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
