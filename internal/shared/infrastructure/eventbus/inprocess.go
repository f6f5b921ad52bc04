package eventbus

import (
	"context"
	"log/slog"
	"time"
)

// InProcessBus delivers events synchronously to consumers in the same
// process. It backs the CLI, API and MCP binaries when no broker is used.
type InProcessBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
}

// NewInProcessBus creates an in-process bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{registry: NewConsumerRegistry(logger), logger: logger}
}

// RegisterConsumer subscribes a consumer.
func (b *InProcessBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish dispatches immediately. A consumer failure is returned so the
// outbox keeps the message for retry.
func (b *InProcessBus) Publish(ctx context.Context, event *Envelope) error {
	start := time.Now()
	err := b.registry.Dispatch(ctx, event)
	b.logger.Debug("event dispatched in process",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"duration_ms", time.Since(start).Milliseconds(),
		"failed", err != nil,
	)
	return err
}

// Close is a no-op.
func (b *InProcessBus) Close() error { return nil }

// NoopPublisher drops events. Used when the outbox processor is disabled.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that only logs.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(_ context.Context, event *Envelope) error {
	p.logger.Debug("noop publish", "routing_key", event.RoutingKey, "event_id", event.EventID)
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
