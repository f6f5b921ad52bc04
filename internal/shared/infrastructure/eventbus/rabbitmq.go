package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the topic exchange domain events are published to.
	ExchangeName = "recruita.domain.events"
	// DefaultQueueName is the durable queue of the worker's consumers.
	DefaultQueueName = "recruita.worker"
)

// dialExchange connects and declares the durable topic exchange.
func dialExchange(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return conn, ch, nil
}

// RabbitMQPublisher publishes envelopes to the topic exchange.
type RabbitMQPublisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewRabbitMQPublisher connects a publisher.
func NewRabbitMQPublisher(url string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, ch, err := dialExchange(url)
	if err != nil {
		return nil, err
	}
	logger.Info("RabbitMQ publisher connected", "exchange", ExchangeName)
	return &RabbitMQPublisher{conn: conn, channel: ch, logger: logger}, nil
}

// Publish sends one envelope as a persistent JSON message.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event *Envelope) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, ExchangeName, event.RoutingKey, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     event.EventID.String(),
		CorrelationId: event.Metadata.CorrelationID.String(),
		Timestamp:     time.Now(),
		Type:          event.RoutingKey,
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.RoutingKey, err)
	}

	p.logger.Debug("message published", "routing_key", event.RoutingKey, "size", len(body))
	return nil
}

// Ping reports whether the connection is still open.
func (p *RabbitMQPublisher) Ping(context.Context) error {
	if p.conn.IsClosed() {
		return errors.New("rabbitmq connection closed")
	}
	return nil
}

// Close closes the channel and connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		p.logger.Warn("error closing channel", "error", err)
	}
	return p.conn.Close()
}

// RabbitMQConsumer feeds a durable queue into a ConsumerRegistry.
type RabbitMQConsumer struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	queue    string
	registry *ConsumerRegistry
	logger   *slog.Logger
}

// NewRabbitMQConsumer declares the queue and binds it to every routing key
// the registry has consumers for. Register consumers before calling it.
func NewRabbitMQConsumer(url, queue string, registry *ConsumerRegistry, logger *slog.Logger) (*RabbitMQConsumer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if queue == "" {
		queue = DefaultQueueName
	}

	conn, ch, err := dialExchange(url)
	if err != nil {
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	for _, routingKey := range registry.EventTypes() {
		if err := ch.QueueBind(queue, routingKey, ExchangeName, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("failed to bind %s: %w", routingKey, err)
		}
	}

	logger.Info("RabbitMQ consumer connected", "queue", queue, "bindings", registry.EventTypes())
	return &RabbitMQConsumer{conn: conn, channel: ch, queue: queue, registry: registry, logger: logger}, nil
}

// Start consumes until ctx is cancelled. Handler failures are requeued;
// undecodable messages are dropped.
func (c *RabbitMQConsumer) Start(ctx context.Context) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *RabbitMQConsumer) handle(ctx context.Context, d amqp.Delivery) {
	var event Envelope
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.logger.Error("dropping undecodable message", "routing_key", d.RoutingKey, "error", err)
		_ = d.Ack(false)
		return
	}
	if event.RoutingKey == "" {
		event.RoutingKey = d.RoutingKey
	}

	if err := c.registry.Dispatch(ctx, &event); err != nil {
		if nackErr := d.Nack(false, !d.Redelivered); nackErr != nil {
			c.logger.Error("failed to nack message", "error", nackErr)
		}
		return
	}
	if err := d.Ack(false); err != nil {
		c.logger.Error("failed to ack message", "error", err)
	}
}

// Close closes the channel and connection.
func (c *RabbitMQConsumer) Close() error {
	if err := c.channel.Close(); err != nil {
		c.logger.Warn("error closing channel", "error", err)
	}
	return c.conn.Close()
}
