package models

import "time"

// GroupExpense is a shared expense as it is persisted.
//
// Payer, participants and share keys are display names, not member IDs.
type GroupExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Amount is the total amount paid.
	Amount float64

	// Description is the free-text label of the expense.
	Description string

	// Date is the calendar date of the expense (UTC midnight).
	Date time.Time

	// PaidBy is the display name of the member who fronted the money.
	PaidBy string

	// PaidFor lists the display names of the members who benefited.
	PaidFor []string

	// SplitMethod is the split strategy name ("equal", "percentage", "custom").
	SplitMethod string

	// SplitDetails holds the share table the strategy produced.
	SplitDetails SplitDetails

	// CreatedBy is the user ID that recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64
}

// SplitDetails is the persisted share table of an expense.
type SplitDetails struct {
	// Payer is the display name of the payer (mirrors GroupExpense.PaidBy).
	Payer string

	// Amount is the amount the shares apply to.
	Amount float64

	// Shares maps display name to share. Percentages for the equal and
	// percentage methods, absolute amounts for custom.
	Shares map[string]float64
}
