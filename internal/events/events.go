// Package events publishes expense lifecycle events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mmynk/groupspend/internal/models"
)

// Kind names what happened to an expense. It doubles as the routing key.
type Kind string

const (
	ExpenseCreated Kind = "expense.created"
	ExpenseUpdated Kind = "expense.updated"
	ExpenseDeleted Kind = "expense.deleted"
)

// ExpenseEvent is the message body. Names are display names as stored.
type ExpenseEvent struct {
	Kind        Kind               `json:"kind"`
	ExpenseID   string             `json:"expense_id"`
	GroupID     string             `json:"group_id"`
	Amount      float64            `json:"amount,omitempty"`
	PaidBy      string             `json:"paid_by,omitempty"`
	PaidFor     []string           `json:"paid_for,omitempty"`
	SplitMethod string             `json:"split_method,omitempty"`
	Shares      map[string]float64 `json:"shares,omitempty"`
	ActorID     string             `json:"actor_id"`
	Timestamp   time.Time          `json:"timestamp"`
}

// NewExpenseEvent builds an event for e performed by actorID.
func NewExpenseEvent(kind Kind, e *models.GroupExpense, actorID string) ExpenseEvent {
	return ExpenseEvent{
		Kind:        kind,
		ExpenseID:   e.ID,
		GroupID:     e.GroupID,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		PaidFor:     e.PaidFor,
		SplitMethod: e.SplitMethod,
		Shares:      e.SplitDetails.Shares,
		ActorID:     actorID,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers expense events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishExpense(ctx context.Context, event ExpenseEvent) error
	Close() error
}

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishExpense(context.Context, ExpenseEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
