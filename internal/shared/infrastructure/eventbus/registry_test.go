package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConsumer struct {
	types    []string
	received []*Envelope
	err      error
}

func (c *recordingConsumer) EventTypes() []string { return c.types }

func (c *recordingConsumer) Handle(_ context.Context, event *Envelope) error {
	c.received = append(c.received, event)
	return c.err
}

func TestConsumerRegistry_Dispatch(t *testing.T) {
	t.Run("delivers to consumers of the routing key only", func(t *testing.T) {
		registry := NewConsumerRegistry(nil)
		scheduled := &recordingConsumer{types: []string{"interviews.interview.scheduled"}}
		cancelled := &recordingConsumer{types: []string{"interviews.interview.cancelled"}}
		registry.Register(scheduled)
		registry.Register(cancelled)

		err := registry.Dispatch(context.Background(), &Envelope{EventID: uuid.New(), RoutingKey: "interviews.interview.scheduled"})

		require.NoError(t, err)
		assert.Len(t, scheduled.received, 1)
		assert.Empty(t, cancelled.received)
	})

	t.Run("runs all consumers and joins failures", func(t *testing.T) {
		registry := NewConsumerRegistry(nil)
		failing := &recordingConsumer{types: []string{"k"}, err: errors.New("webhook down")}
		healthy := &recordingConsumer{types: []string{"k"}}
		registry.Register(failing)
		registry.Register(healthy)

		err := registry.Dispatch(context.Background(), &Envelope{RoutingKey: "k"})

		assert.EqualError(t, err, "webhook down")
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unrouted events are ignored", func(t *testing.T) {
		registry := NewConsumerRegistry(nil)

		assert.NoError(t, registry.Dispatch(context.Background(), &Envelope{RoutingKey: "nobody.listens"}))
	})

	t.Run("lists event types sorted", func(t *testing.T) {
		registry := NewConsumerRegistry(nil)
		registry.Register(&recordingConsumer{types: []string{"b", "a"}})

		assert.Equal(t, []string{"a", "b"}, registry.EventTypes())
	})
}
