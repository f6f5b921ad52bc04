package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/google/uuid"
)

// Envelope is the wire form of a domain event: identity and routing on the
// outside, the event's own fields as an opaque JSON payload.
type Envelope struct {
	EventID       uuid.UUID            `json:"event_id"`
	AggregateID   uuid.UUID            `json:"aggregate_id"`
	AggregateType string               `json:"aggregate_type"`
	RoutingKey    string               `json:"routing_key"`
	OccurredAt    time.Time            `json:"occurred_at"`
	Payload       json.RawMessage      `json:"payload"`
	Metadata      domain.EventMetadata `json:"metadata"`
}

// EnvelopeFor wraps a domain event for direct dispatch.
func EnvelopeFor(event domain.DomainEvent) (*Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
		Metadata:      event.Metadata(),
	}, nil
}

// Decode unmarshals the payload into v.
func (e *Envelope) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// EventConsumer handles the routing keys it declares. Delivery is at least
// once, so Handle must tolerate duplicates.
type EventConsumer interface {
	EventTypes() []string
	Handle(ctx context.Context, event *Envelope) error
}

// Publisher sends envelopes to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event *Envelope) error
	Close() error
}
