package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupspend/internal/models"
)

const dateLayout = "2006-01-02"

const expenseColumns = `id, group_id, amount, description, expense_date, paid_by,
	split_method, split_amount, created_by, created_at, updated_at`

// CreateGroupExpense persists a new expense with its participants and shares.
func (s *SQLiteStore) CreateGroupExpense(ctx context.Context, expense *models.GroupExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = expense.CreatedAt

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Amount, expense.Description,
		expense.Date.UTC().Format(dateLayout), expense.PaidBy, expense.SplitMethod,
		expense.SplitDetails.Amount, expense.CreatedBy, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertSplit(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateGroupExpense replaces an expense's fields, participants and shares.
func (s *SQLiteStore) UpdateGroupExpense(ctx context.Context, expense *models.GroupExpense) error {
	expense.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE group_expenses
		 SET amount = ?, description = ?, expense_date = ?, paid_by = ?,
		     split_method = ?, split_amount = ?, updated_at = ?
		 WHERE id = ? AND group_id = ?`,
		expense.Amount, expense.Description, expense.Date.UTC().Format(dateLayout),
		expense.PaidBy, expense.SplitMethod, expense.SplitDetails.Amount, expense.UpdatedAt,
		expense.ID, expense.GroupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("expense", expense.ID)
	}

	for _, table := range []string{"group_expense_participants", "group_expense_shares"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE expense_id = ?", expense.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertSplit(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertSplit(ctx context.Context, tx *sql.Tx, expense *models.GroupExpense) error {
	for i, name := range expense.PaidFor {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_expense_participants (expense_id, position, name) VALUES (?, ?, ?)",
			expense.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	for name, share := range expense.SplitDetails.Shares {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_expense_shares (expense_id, name, share) VALUES (?, ?, ?)",
			expense.ID, name, share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}
	return nil
}

// GetGroupExpense retrieves an expense of a group, including participants and shares.
func (s *SQLiteStore) GetGroupExpense(ctx context.Context, groupID, expenseID string) (*models.GroupExpense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM group_expenses WHERE id = ? AND group_id = ?`,
		expenseID, groupID,
	))
	if isNoRows(err) {
		return nil, notFound("expense", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadSplit(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListGroupExpenses returns a group's expenses, newest date first.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, groupID string) ([]*models.GroupExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM group_expenses
		 WHERE group_id = ?
		 ORDER BY expense_date DESC, created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.GroupExpense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadSplit(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// DeleteGroupExpense removes an expense; participants and shares cascade.
func (s *SQLiteStore) DeleteGroupExpense(ctx context.Context, groupID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM group_expenses WHERE id = ? AND group_id = ?",
		expenseID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("expense", expenseID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.GroupExpense, error) {
	expense := &models.GroupExpense{}
	var date string
	err := row.Scan(
		&expense.ID, &expense.GroupID, &expense.Amount, &expense.Description, &date,
		&expense.PaidBy, &expense.SplitMethod, &expense.SplitDetails.Amount,
		&expense.CreatedBy, &expense.CreatedAt, &expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	expense.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("bad expense_date %q: %w", date, err)
	}
	expense.SplitDetails.Payer = expense.PaidBy
	return expense, nil
}

func (s *SQLiteStore) loadSplit(ctx context.Context, expense *models.GroupExpense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM group_expense_participants WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		expense.PaidFor = append(expense.PaidFor, name)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	shareRows, err := s.db.QueryContext(ctx,
		"SELECT name, share FROM group_expense_shares WHERE expense_id = ?",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	defer shareRows.Close()

	expense.SplitDetails.Shares = make(map[string]float64)
	for shareRows.Next() {
		var name string
		var share float64
		if err := shareRows.Scan(&name, &share); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		expense.SplitDetails.Shares[name] = share
	}
	if err := shareRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}
	return nil
}
