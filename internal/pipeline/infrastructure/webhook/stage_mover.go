// Package webhook notifies an external recruitment pipeline over HTTP.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/recruita/internal/pipeline/domain"
)

// Config configures the webhook.
type Config struct {
	URL     string
	Timeout time.Duration
	// Token, when set, is sent as a bearer token.
	Token string
	// ConsecutiveFailures opens the breaker; OpenTimeout keeps it open.
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// StageMover posts stage moves to the pipeline's webhook. Calls fail fast
// with gobreaker.ErrOpenState while the endpoint keeps failing.
type StageMover struct {
	url     string
	token   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *slog.Logger
}

// NewStageMover creates a new StageMover.
func NewStageMover(cfg Config, logger *slog.Logger) *StageMover {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "pipeline-webhook",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("pipeline webhook breaker changed state",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &StageMover{
		url:     cfg.URL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		logger:  logger,
	}
}

type stageMoveRequest struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	ApplicationID  uuid.UUID `json:"application_id"`
	Stage          string    `json:"stage"`
	RequestedAt    time.Time `json:"requested_at"`
}

// MoveToStage posts the move. Any non-2xx response is an error.
func (m *StageMover) MoveToStage(ctx context.Context, organizationID, applicationID uuid.UUID, stage domain.Stage) error {
	body, err := json.Marshal(stageMoveRequest{
		OrganizationID: organizationID,
		ApplicationID:  applicationID,
		Stage:          string(stage),
		RequestedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	_, err = m.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, m.post(ctx, body)
	})
	if err != nil {
		return err
	}
	m.logger.Debug("pipeline webhook delivered",
		"application_id", applicationID,
		"stage", string(stage),
	)
	return nil
}

// State reports the breaker state for health checks.
func (m *StageMover) State() gobreaker.State {
	return m.breaker.State()
}

func (m *StageMover) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("pipeline webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
