package api

// PersonalExpense is one of the caller's own expenses.
type PersonalExpense struct {
	ID        string `json:"id"`
	Amount    string `json:"amount"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type CreatePersonalExpenseRequest struct {
	Amount string `json:"amount" validate:"required"`
	Name   string `json:"name" validate:"required,max=200"`
	Date   string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"` // empty means today
}

type CreatePersonalExpenseResponse struct {
	Expense *PersonalExpense `json:"expense"`
}

type ListPersonalExpensesRequest struct {
	// Month restricts the list to one calendar month (YYYY-MM). Empty lists everything.
	Month string `json:"month,omitempty" validate:"omitempty,datetime=2006-01"`
}

type ListPersonalExpensesResponse struct {
	Expenses []*PersonalExpense `json:"expenses"`
	Total    string             `json:"total"`
}

type EditPersonalExpenseRequest struct {
	ExpenseID string `json:"expense_id" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	Name      string `json:"name" validate:"required,max=200"`
	Date      string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type EditPersonalExpenseResponse struct {
	Expense *PersonalExpense `json:"expense"`
}

type DeletePersonalExpenseRequest struct {
	ExpenseID string `json:"expense_id" validate:"required"`
}

type DeletePersonalExpenseResponse struct{}

type GetBudgetRequest struct {
	// Month is the calendar month to measure (YYYY-MM). Empty means the current month.
	Month string `json:"month,omitempty" validate:"omitempty,datetime=2006-01"`
}

// Budget is a monthly budget measured against personal spending.
type Budget struct {
	Month     string `json:"month"`
	Budget    string `json:"budget"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
}

type GetBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type UpdateBudgetRequest struct {
	Budget string `json:"budget" validate:"required"`
}

type UpdateBudgetResponse struct {
	Budget *Budget `json:"budget"`
}
