package eventbus

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker around a publisher.
type BreakerConfig struct {
	Name                string
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	HalfOpenRequests    uint32
}

// DefaultBreakerConfig opens after five straight failures for 30 seconds.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:                name,
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		HalfOpenRequests:    1,
	}
}

// BreakerPublisher fails fast while the broker is down instead of letting
// every outbox message wait for a dial timeout.
type BreakerPublisher struct {
	inner   Publisher
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerPublisher wraps inner in a circuit breaker.
func NewBreakerPublisher(inner Publisher, cfg BreakerConfig, logger *slog.Logger) *BreakerPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("publisher circuit breaker changed state",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &BreakerPublisher{inner: inner, breaker: gobreaker.NewCircuitBreaker[any](settings)}
}

// Publish forwards to the wrapped publisher unless the breaker is open, in
// which case gobreaker.ErrOpenState is returned.
func (p *BreakerPublisher) Publish(ctx context.Context, event *Envelope) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.inner.Publish(ctx, event)
	})
	return err
}

// State reports the breaker state for health checks.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.breaker.State()
}

func (p *BreakerPublisher) Close() error { return p.inner.Close() }
