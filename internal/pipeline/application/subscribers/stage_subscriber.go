package subscribers

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	interviewDomain "github.com/felixgeelhaar/recruita/internal/interviews/domain"
	"github.com/felixgeelhaar/recruita/internal/pipeline/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// StageSubscriber moves an application to the interview stage when an
// interview is scheduled for it.
type StageSubscriber struct {
	mover   domain.StageMover
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewStageSubscriber creates a new StageSubscriber. A nil mover falls back to
// one that only logs.
func NewStageSubscriber(mover domain.StageMover, metrics observability.Metrics, logger *slog.Logger) *StageSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if mover == nil {
		mover = NewLogStageMover(logger)
	}
	return &StageSubscriber{mover: mover, metrics: metrics, logger: logger}
}

// EventTypes returns the event types this subscriber handles.
func (s *StageSubscriber) EventTypes() []string {
	return []string{interviewDomain.RoutingKeyScheduled}
}

// InterviewScheduledPayload is the payload of interviews.interview.scheduled.
type InterviewScheduledPayload struct {
	InterviewID    uuid.UUID `json:"interview_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	ApplicationID  uuid.UUID `json:"application_id"`
	Type           string    `json:"type"`
	ScheduledAt    time.Time `json:"scheduled_at"`
}

// Handle processes an interview event. Malformed payloads are logged and
// dropped; a failed move is returned so the delivery is retried.
func (s *StageSubscriber) Handle(ctx context.Context, event *eventbus.Envelope) error {
	if event.RoutingKey != interviewDomain.RoutingKeyScheduled {
		return nil
	}

	var payload InterviewScheduledPayload
	if err := event.Decode(&payload); err != nil {
		s.logger.Error("failed to decode interview scheduled payload",
			"event_id", event.EventID,
			"error", err,
		)
		return nil
	}
	if payload.ApplicationID == uuid.Nil {
		s.logger.Warn("interview scheduled without application, skipping",
			"event_id", event.EventID,
			"interview_id", payload.InterviewID,
		)
		return nil
	}

	if err := s.mover.MoveToStage(ctx, payload.OrganizationID, payload.ApplicationID, domain.StageInterview); err != nil {
		s.logger.Error("failed to move application to interview stage",
			"application_id", payload.ApplicationID,
			"interview_id", payload.InterviewID,
			"error", err,
		)
		return err
	}

	s.metrics.Counter(observability.MetricEventsConsumed, 1, observability.T("routing_key", event.RoutingKey))
	s.logger.Info("application moved to interview stage",
		"application_id", payload.ApplicationID,
		"interview_id", payload.InterviewID,
	)
	return nil
}

// LogStageMover records stage moves in the log when no pipeline endpoint is
// configured.
type LogStageMover struct {
	logger *slog.Logger
}

// NewLogStageMover creates a new LogStageMover.
func NewLogStageMover(logger *slog.Logger) *LogStageMover {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogStageMover{logger: logger}
}

func (m *LogStageMover) MoveToStage(_ context.Context, organizationID, applicationID uuid.UUID, stage domain.Stage) error {
	m.logger.Info("pipeline stage move",
		"organization_id", organizationID,
		"application_id", applicationID,
		"stage", string(stage),
	)
	return nil
}
