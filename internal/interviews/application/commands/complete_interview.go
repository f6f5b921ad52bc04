package commands

import (
	"context"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// CompleteInterviewCommand marks an interview as held.
type CompleteInterviewCommand struct {
	InterviewID uuid.UUID `json:"interview_id"`
	Rating      *int      `json:"rating,omitempty"`
	Notes       string    `json:"notes"`
	ActorID     uuid.UUID `json:"actor_id"`
}

// Validate checks the command fields.
func (c CompleteInterviewCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.InterviewID, sharedApplication.RequiredID),
		validation.Field(&c.Rating, validation.Min(1), validation.Max(5)),
		validation.Field(&c.Notes, validation.Length(0, 5000)),
	)
}

// CompleteInterviewHandler handles the CompleteInterviewCommand.
type CompleteInterviewHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	metrics    observability.Metrics
	logger     *slog.Logger
}

// NewCompleteInterviewHandler creates a new CompleteInterviewHandler.
func NewCompleteInterviewHandler(
	repo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	metrics observability.Metrics,
	logger *slog.Logger,
) *CompleteInterviewHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CompleteInterviewHandler{repo: repo, outboxRepo: outboxRepo, uow: uow, metrics: metrics, logger: logger}
}

// Handle executes the CompleteInterviewCommand. Bookings are left in place.
func (h *CompleteInterviewHandler) Handle(ctx context.Context, cmd CompleteInterviewCommand) (*domain.Interview, error) {
	if err := cmd.Validate(); err != nil {
		return nil, sharedDomain.Validation(err)
	}
	actor := actorOf(ctx, cmd.ActorID)

	interview, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.Interview, error) {
		interview, err := h.repo.FindByID(txCtx, cmd.InterviewID)
		if err != nil {
			return nil, err
		}
		if err := interview.Complete(cmd.Rating, cmd.Notes); err != nil {
			return nil, err
		}
		if err := save(txCtx, h.repo, h.outboxRepo, interview, actor); err != nil {
			return nil, err
		}
		return interview, nil
	})
	if err != nil {
		return nil, err
	}

	h.metrics.Counter(observability.MetricInterviewsCompleted, 1, observability.T("status", string(domain.StatusCompleted)))
	h.logger.Info("interview completed", "interview_id", interview.ID())
	return interview, nil
}
