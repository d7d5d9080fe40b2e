package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupspend/internal/models"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleExpense() *models.GroupExpense {
	return &models.GroupExpense{
		ID:          "e1",
		GroupID:     "g1",
		Amount:      90,
		PaidBy:      "alice",
		PaidFor:     []string{"alice", "bob"},
		SplitMethod: "equal",
		SplitDetails: models.SplitDetails{
			Payer:  "alice",
			Amount: 90,
			Shares: map[string]float64{"alice": 50, "bob": 50},
		},
	}
}

func TestNewExpenseEvent(t *testing.T) {
	event := NewExpenseEvent(ExpenseCreated, sampleExpense(), "u1")

	assert.Equal(t, ExpenseCreated, event.Kind)
	assert.Equal(t, "e1", event.ExpenseID)
	assert.Equal(t, "g1", event.GroupID)
	assert.Equal(t, "alice", event.PaidBy)
	assert.Equal(t, map[string]float64{"alice": 50, "bob": 50}, event.Shares)
	assert.Equal(t, "u1", event.ActorID)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Minute)
}

func TestAMQPPublisher_PublishExpense(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{channel: ch, exchange: "groupspend.events"}

	event := NewExpenseEvent(ExpenseUpdated, sampleExpense(), "u1")
	require.NoError(t, p.PublishExpense(context.Background(), event))

	assert.Equal(t, "groupspend.events", ch.exchange)
	assert.Equal(t, "expense.updated", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "e1", ch.msg.MessageId)

	var decoded ExpenseEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, ExpenseUpdated, decoded.Kind)
	assert.Equal(t, []string{"alice", "bob"}, decoded.PaidFor)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &AMQPPublisher{channel: ch, exchange: "x"}

	err := p.PublishExpense(context.Background(), NewExpenseEvent(ExpenseDeleted, sampleExpense(), "u1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expense.deleted")

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishExpense(context.Background(), ExpenseEvent{}))
	assert.NoError(t, p.Close())
}
