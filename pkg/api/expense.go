package api

// Draft is an in-progress expense keyed by member ID.
type Draft struct {
	Amount         string             `json:"amount"`
	Description    string             `json:"description"`
	Date           string             `json:"date,omitempty"` // YYYY-MM-DD; empty means today
	Strategy       string             `json:"strategy"`
	PayerID        string             `json:"payer_id"`
	ParticipantIDs []string           `json:"participant_ids"`
	Shares         map[string]float64 `json:"shares"`
}

// FieldUpdate is a single form edit applied by UpdateDraft.
type FieldUpdate struct {
	Field    string `json:"field" validate:"required"`
	MemberID string `json:"member_id,omitempty"`
	Value    string `json:"value"`
}

// Expense is a stored expense. Payer, participants and share keys are display names.
type Expense struct {
	ID            string             `json:"id"`
	GroupID       string             `json:"group_id"`
	Amount        float64            `json:"amount"`
	Description   string             `json:"description"`
	Date          string             `json:"date"`
	PaidBy        string             `json:"paid_by"`
	PaidFor       []string           `json:"paid_for"`
	SplitMethod   string             `json:"split_method"`
	Shares        map[string]float64 `json:"shares"`
	CreatedBy     string             `json:"created_by"`
	CreatedByName string             `json:"created_by_name,omitempty"`
	CreatedAt     int64              `json:"created_at"`
	UpdatedAt     int64              `json:"updated_at"`
}

type HydrateDraftRequest struct {
	GroupID   string `json:"group_id" validate:"required"`
	ExpenseID string `json:"expense_id" validate:"required"`
}

type HydrateDraftResponse struct {
	Draft *Draft `json:"draft"`
	// PayerUnresolved is set when the stored payer is no longer a member
	// and a payer must be chosen again before saving.
	PayerUnresolved bool      `json:"payer_unresolved"`
	Roster          []*Member `json:"roster"`
}

type UpdateDraftRequest struct {
	GroupID string         `json:"group_id" validate:"required"`
	Draft   *Draft         `json:"draft" validate:"required"`
	Updates []*FieldUpdate `json:"updates" validate:"dive"`
}

type UpdateDraftResponse struct {
	Draft *Draft `json:"draft"`
}

type PreviewSplitRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	Draft   *Draft `json:"draft" validate:"required"`
}

type PreviewSplitResponse struct {
	Shares map[string]float64 `json:"shares"`
	// Amounts is the money owed per member ID, as decimal strings.
	Amounts map[string]string `json:"amounts"`
	// Unallocated is amount minus the sum of custom shares ("0" otherwise).
	Unallocated string `json:"unallocated"`
}

type CreateExpenseRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	Draft   *Draft `json:"draft" validate:"required"`
}

type CreateExpenseResponse struct {
	Expense *Expense          `json:"expense"`
	Amounts map[string]string `json:"amounts"`
}

type EditExpenseRequest struct {
	GroupID   string `json:"group_id" validate:"required"`
	ExpenseID string `json:"expense_id" validate:"required"`
	Draft     *Draft `json:"draft" validate:"required"`
}

type EditExpenseResponse struct {
	Expense *Expense          `json:"expense"`
	Amounts map[string]string `json:"amounts"`
}

type GetExpenseRequest struct {
	GroupID   string `json:"group_id" validate:"required"`
	ExpenseID string `json:"expense_id" validate:"required"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	GroupID   string `json:"group_id" validate:"required"`
	ExpenseID string `json:"expense_id" validate:"required"`
}

type DeleteExpenseResponse struct{}
