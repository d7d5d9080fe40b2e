package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupspend/internal/models"
)

const personalColumns = `id, user_id, amount, name, expense_date, created_at, updated_at`

// CreatePersonalExpense inserts a new personal expense.
func (s *SQLiteStore) CreatePersonalExpense(ctx context.Context, expense *models.PersonalExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.UpdatedAt = expense.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO personal_expenses (`+personalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.UserID, expense.Amount, expense.Name,
		expense.Date.UTC().Format(dateLayout), expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert personal expense: %w", err)
	}
	return nil
}

// GetPersonalExpense retrieves one of the user's expenses.
func (s *SQLiteStore) GetPersonalExpense(ctx context.Context, userID, expenseID string) (*models.PersonalExpense, error) {
	expense, err := scanPersonalExpense(s.db.QueryRowContext(ctx,
		`SELECT `+personalColumns+` FROM personal_expenses WHERE id = ? AND user_id = ?`,
		expenseID, userID,
	))
	if isNoRows(err) {
		return nil, notFound("personal expense", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get personal expense: %w", err)
	}
	return expense, nil
}

// UpdatePersonalExpense replaces the amount, name and date of an expense.
func (s *SQLiteStore) UpdatePersonalExpense(ctx context.Context, expense *models.PersonalExpense) error {
	expense.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE personal_expenses
		 SET amount = ?, name = ?, expense_date = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		expense.Amount, expense.Name, expense.Date.UTC().Format(dateLayout), expense.UpdatedAt,
		expense.ID, expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update personal expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("personal expense", expense.ID)
	}
	return nil
}

// DeletePersonalExpense removes one of the user's expenses.
func (s *SQLiteStore) DeletePersonalExpense(ctx context.Context, userID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM personal_expenses WHERE id = ? AND user_id = ?",
		expenseID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete personal expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("personal expense", expenseID)
	}
	return nil
}

// ListPersonalExpenses returns the user's expenses dated in [from, to), newest first.
func (s *SQLiteStore) ListPersonalExpenses(ctx context.Context, userID string, from, to time.Time) ([]*models.PersonalExpense, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}
	if !from.IsZero() {
		where = append(where, "expense_date >= ?")
		args = append(args, from.UTC().Format(dateLayout))
	}
	if !to.IsZero() {
		where = append(where, "expense_date < ?")
		args = append(args, to.UTC().Format(dateLayout))
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+personalColumns+` FROM personal_expenses
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY expense_date DESC, created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.PersonalExpense
	for rows.Next() {
		expense, err := scanPersonalExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan personal expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate personal expenses: %w", err)
	}
	return expenses, nil
}

// GetMonthlyBudget returns the user's monthly budget.
func (s *SQLiteStore) GetMonthlyBudget(ctx context.Context, userID string) (float64, error) {
	var budget float64
	err := s.db.QueryRowContext(ctx, "SELECT monthly_budget FROM users WHERE id = ?", userID).Scan(&budget)
	if isNoRows(err) {
		return 0, notFound("user", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// SetMonthlyBudget replaces the user's monthly budget.
func (s *SQLiteStore) SetMonthlyBudget(ctx context.Context, userID string, budget float64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET monthly_budget = ?, updated_at = ? WHERE id = ?",
		budget, time.Now().Unix(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("user", userID)
	}
	return nil
}

func scanPersonalExpense(row rowScanner) (*models.PersonalExpense, error) {
	expense := &models.PersonalExpense{}
	var date string
	err := row.Scan(
		&expense.ID, &expense.UserID, &expense.Amount, &expense.Name, &date,
		&expense.CreatedAt, &expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	expense.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("bad expense_date %q: %w", date, err)
	}
	return expense, nil
}
