package outbox_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/recruita/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mu        sync.Mutex
	published []*eventbus.Envelope
	err       error
}

func (p *mockPublisher) Publish(_ context.Context, event *eventbus.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func (p *mockPublisher) Close() error { return nil }

func (p *mockPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func newMessage(routingKey string) *outbox.Message {
	return &outbox.Message{
		EventID:       uuid.New(),
		AggregateType: "Interview",
		AggregateID:   uuid.New(),
		RoutingKey:    routingKey,
		Payload:       []byte(`{"title":"Tech Interview"}`),
		Metadata:      []byte(`{}`),
		CreatedAt:     time.Now(),
	}
}

func testConfig() outbox.ProcessorConfig {
	cfg := outbox.DefaultProcessorConfig()
	cfg.PollInterval = 10 * time.Millisecond
	cfg.MaxRetries = 3
	cfg.RetryBackoffBase = time.Hour
	return cfg
}

func TestProcessor_ProcessOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks messages", func(t *testing.T) {
		repo := outbox.NewInMemoryRepository()
		require.NoError(t, repo.SaveBatch(ctx, []*outbox.Message{
			newMessage("interviews.interview.scheduled"),
			newMessage("interviews.interview.cancelled"),
		}))
		publisher := &mockPublisher{}
		metrics := observability.NewInMemoryMetrics()
		p := outbox.NewProcessor(repo, publisher, testConfig(), nil, metrics)

		require.NoError(t, p.ProcessOnce(ctx))

		require.Equal(t, 2, publisher.count())
		assert.Equal(t, "interviews.interview.scheduled", publisher.published[0].RoutingKey)
		assert.JSONEq(t, `{"title":"Tech Interview"}`, string(publisher.published[0].Payload))
		for _, msg := range repo.Messages() {
			assert.True(t, msg.IsPublished())
		}
		assert.Equal(t, uint64(2), p.GetStats().PublishedCount)
		assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricEventsPublished,
			observability.T("routing_key", "interviews.interview.scheduled")))
		assert.Zero(t, metrics.GaugeValue(observability.MetricOutboxPending))
	})

	t.Run("schedules a retry on failure", func(t *testing.T) {
		repo := outbox.NewInMemoryRepository()
		require.NoError(t, repo.Save(ctx, newMessage("interviews.interview.scheduled")))
		publisher := &mockPublisher{err: errors.New("broker unavailable")}
		p := outbox.NewProcessor(repo, publisher, testConfig(), nil, nil)

		require.NoError(t, p.ProcessOnce(ctx))

		msg := repo.Messages()[0]
		assert.False(t, msg.IsPublished())
		assert.Equal(t, 1, msg.RetryCount)
		require.NotNil(t, msg.NextRetryAt)
		assert.True(t, msg.NextRetryAt.After(time.Now()))
		require.NotNil(t, msg.LastError)
		assert.Equal(t, "broker unavailable", *msg.LastError)
		assert.Equal(t, uint64(1), p.GetStats().FailedCount)

		// Not due yet, so a second pass leaves it alone.
		require.NoError(t, p.ProcessOnce(ctx))
		assert.Equal(t, 1, repo.Messages()[0].RetryCount)
	})

	t.Run("dead-letters after max retries", func(t *testing.T) {
		repo := outbox.NewInMemoryRepository()
		msg := newMessage("interviews.interview.scheduled")
		msg.RetryCount = 2
		require.NoError(t, repo.Save(ctx, msg))
		publisher := &mockPublisher{err: errors.New("still down")}
		p := outbox.NewProcessor(repo, publisher, testConfig(), nil, nil)

		require.NoError(t, p.ProcessOnce(ctx))

		stored := repo.Messages()[0]
		assert.True(t, stored.IsDead())
		require.NotNil(t, stored.DeadLetterReason)
		assert.Equal(t, "still down", *stored.DeadLetterReason)
		assert.Equal(t, uint64(1), p.GetStats().DeadCount)
	})
}

func TestProcessor_Drain(t *testing.T) {
	ctx := context.Background()
	repo := outbox.NewInMemoryRepository()
	for range 5 {
		require.NoError(t, repo.Save(ctx, newMessage("interviews.interview.scheduled")))
	}
	publisher := &mockPublisher{}
	cfg := testConfig()
	cfg.BatchSize = 2
	p := outbox.NewProcessor(repo, publisher, cfg, nil, nil)

	require.NoError(t, p.Drain(ctx))

	assert.Equal(t, 5, publisher.count())
	pending, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestProcessor_StartStop(t *testing.T) {
	ctx := context.Background()
	repo := outbox.NewInMemoryRepository()
	require.NoError(t, repo.Save(ctx, newMessage("interviews.interview.completed")))
	publisher := &mockPublisher{}
	p := outbox.NewProcessor(repo, publisher, testConfig(), nil, nil)

	require.NoError(t, p.Start(ctx))
	assert.True(t, p.IsRunning())

	assert.Eventually(t, func() bool { return publisher.count() == 1 }, time.Second, 10*time.Millisecond)

	p.Stop()
	assert.False(t, p.IsRunning())
	assert.False(t, p.GetStats().IsRunning)
}
