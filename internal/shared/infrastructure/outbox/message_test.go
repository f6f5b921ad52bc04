package outbox

import (
	"encoding/json"
	"testing"

	"github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomBooked struct {
	domain.BaseEvent
	RoomID uuid.UUID `json:"room_id"`
}

func newRoomBooked(aggregateID uuid.UUID) *roomBooked {
	return &roomBooked{
		BaseEvent: domain.NewBaseEvent(aggregateID, "Booking", "booking.room.booked"),
		RoomID:    uuid.New(),
	}
}

func TestNewMessage(t *testing.T) {
	t.Run("creates message from domain event", func(t *testing.T) {
		aggregateID := uuid.New()
		event := newRoomBooked(aggregateID)

		msg, err := NewMessage(event)

		require.NoError(t, err)
		assert.Equal(t, event.EventID(), msg.EventID)
		assert.Equal(t, "Booking", msg.AggregateType)
		assert.Equal(t, aggregateID, msg.AggregateID)
		assert.Equal(t, "booking.room.booked", msg.RoutingKey)
		assert.Equal(t, event.OccurredAt(), msg.CreatedAt)
		assert.False(t, msg.IsPublished())
		assert.False(t, msg.IsDead())
		assert.Zero(t, msg.RetryCount)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, event.RoomID.String(), payload["room_id"])
	})

	t.Run("carries metadata", func(t *testing.T) {
		event := newRoomBooked(uuid.New())
		md := domain.EventMetadata{CorrelationID: uuid.New(), ActorID: uuid.New()}
		event.SetMetadata(md)

		msg, err := NewMessage(event)
		require.NoError(t, err)

		var decoded domain.EventMetadata
		require.NoError(t, json.Unmarshal(msg.Metadata, &decoded))
		assert.Equal(t, md, decoded)
	})
}

func TestNewMessages(t *testing.T) {
	events := []domain.DomainEvent{newRoomBooked(uuid.New()), newRoomBooked(uuid.New())}

	msgs, err := NewMessages(events)

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, events[1].EventID(), msgs[1].EventID)
}

func TestMessage_Envelope(t *testing.T) {
	event := newRoomBooked(uuid.New())
	md := domain.EventMetadata{CorrelationID: uuid.New()}
	event.SetMetadata(md)
	msg, err := NewMessage(event)
	require.NoError(t, err)

	env := msg.Envelope()

	assert.Equal(t, msg.EventID, env.EventID)
	assert.Equal(t, msg.AggregateID, env.AggregateID)
	assert.Equal(t, msg.RoutingKey, env.RoutingKey)
	assert.Equal(t, md, env.Metadata)

	var decoded struct {
		RoomID uuid.UUID `json:"room_id"`
	}
	require.NoError(t, env.Decode(&decoded))
	assert.Equal(t, event.RoomID, decoded.RoomID)
}

func TestMessage_CanRetry(t *testing.T) {
	msg := &Message{RetryCount: 2}

	assert.True(t, msg.CanRetry(3))
	assert.False(t, msg.CanRetry(2))
}
