// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/groupspend/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned (wrapped) when a unique constraint would be violated.
var ErrConflict = errors.New("already exists")

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUsersByIDs returns the users found among ids, keyed by ID. Unknown
	// IDs are skipped.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// RosterProvider supplies the current members of a group. Callers must not
// cache the result across requests; membership changes at any time.
type RosterProvider interface {
	ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error)
}

// GroupStore persists groups and their membership.
type GroupStore interface {
	RosterProvider

	// CreateGroup persists a new group and adds its owner as the first member.
	// group.ID and group.CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group together with its roster.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser returns the groups userID belongs to, without rosters.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	AddGroupMember(ctx context.Context, groupID, userID string) error
	RemoveGroupMember(ctx context.Context, groupID, userID string) error
}

// ExpenseStore persists group expenses in their name-keyed form.
type ExpenseStore interface {
	// CreateGroupExpense persists a new expense.
	// expense.ID, CreatedAt and UpdatedAt are populated by the store.
	CreateGroupExpense(ctx context.Context, expense *models.GroupExpense) error

	GetGroupExpense(ctx context.Context, groupID, expenseID string) (*models.GroupExpense, error)

	// UpdateGroupExpense replaces an existing expense. CreatedBy and CreatedAt are kept.
	UpdateGroupExpense(ctx context.Context, expense *models.GroupExpense) error

	DeleteGroupExpense(ctx context.Context, groupID, expenseID string) error

	// ListGroupExpenses returns a group's expenses, newest date first.
	ListGroupExpenses(ctx context.Context, groupID string) ([]*models.GroupExpense, error)
}

// PersonalStore persists a user's own expenses and budget. Every lookup is
// scoped to the owning user; another user's expense is reported as not found.
type PersonalStore interface {
	// CreatePersonalExpense persists a new expense.
	// expense.ID, CreatedAt and UpdatedAt are populated by the store.
	CreatePersonalExpense(ctx context.Context, expense *models.PersonalExpense) error

	GetPersonalExpense(ctx context.Context, userID, expenseID string) (*models.PersonalExpense, error)

	// UpdatePersonalExpense replaces amount, name and date. CreatedAt is kept.
	UpdatePersonalExpense(ctx context.Context, expense *models.PersonalExpense) error

	DeletePersonalExpense(ctx context.Context, userID, expenseID string) error

	// ListPersonalExpenses returns the user's expenses dated in [from, to),
	// newest date first. A zero bound is open.
	ListPersonalExpenses(ctx context.Context, userID string, from, to time.Time) ([]*models.PersonalExpense, error)

	GetMonthlyBudget(ctx context.Context, userID string) (float64, error)
	SetMonthlyBudget(ctx context.Context, userID string, budget float64) error
}

// Store defines the full storage surface used by the services.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore
	PersonalStore

	// Close releases any resources held by the store.
	Close() error
}
