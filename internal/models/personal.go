package models

import "time"

// DefaultMonthlyBudget is the budget every account starts with.
const DefaultMonthlyBudget = 1000.0

// PersonalExpense is money a single user spent, outside of any group.
type PersonalExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// UserID owns the expense. Only the owner can see or change it.
	UserID string

	// Amount is the amount spent, rounded to cents.
	Amount float64

	// Name is the free-text label of the expense.
	Name string

	// Date is the calendar date of the expense (UTC midnight).
	Date time.Time

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64
}
