// Package events defines the ledger event stream consumed by the reporting
// pipeline (the out-of-scope feature that fills in the reports block).
// Publishing is best-effort: a broker failure is logged and never surfaced
// to the client, since the durable commit already happened.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/financer-app/apiserver/internal/mq"
	"github.com/financer-app/apiserver/types"
	"github.com/google/uuid"
)

// Event types.
const (
	TypeUserRegistered   = "user.registered"
	TypeTransactionAdded = "transaction.added"
	TypeUserUpdated      = "user.updated"
)

// Event is one entry on the ledger event stream.
type Event struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Email       string             `json:"email"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Transaction *types.Transaction `json:"transaction,omitempty"`
}

// Publisher emits ledger events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// NewEvent stamps an event with an ID and timestamp.
func NewEvent(eventType, email string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

// BrokerPublisher publishes events through a message broker backend.
type BrokerPublisher struct {
	backend mq.Backend
	channel string
}

// NewBrokerPublisher constructs a publisher for the given channel.
func NewBrokerPublisher(backend mq.Backend, channel string) *BrokerPublisher {
	return &BrokerPublisher{backend: backend, channel: channel}
}

func (p *BrokerPublisher) Publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "encode ledger event", "type", event.Type, "error", err)
		return
	}
	attrs := map[string]string{"type": event.Type}
	if _, err := p.backend.Publish(ctx, p.channel, data, attrs); err != nil {
		slog.ErrorContext(ctx, "publish ledger event", "type", event.Type, "channel", p.channel, "error", err)
	}
}

// Close closes the underlying broker connection.
func (p *BrokerPublisher) Close() error {
	return p.backend.Close()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) {}
