package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	before := time.Now().UTC()

	event := domain.NewBaseEvent(aggregateID, "Interview", "interviews.interview.scheduled")

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "Interview", event.AggregateType())
	assert.Equal(t, "interviews.interview.scheduled", event.RoutingKey())
	assert.False(t, event.OccurredAt().Before(before))
}

func TestBaseEvent_SetMetadata(t *testing.T) {
	event := domain.NewBaseEvent(uuid.New(), "Booking", "booking.booking.created")
	metadata := domain.EventMetadata{
		CorrelationID: uuid.New(),
		CausationID:   uuid.New(),
		ActorID:       uuid.New(),
	}

	event.SetMetadata(metadata)

	assert.Equal(t, metadata, event.Metadata())
}
