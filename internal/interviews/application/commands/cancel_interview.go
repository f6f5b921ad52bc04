package commands

import (
	"context"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/application/services"
	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// CancelInterviewCommand cancels an interview and releases its bookings.
type CancelInterviewCommand struct {
	InterviewID uuid.UUID `json:"interview_id"`
	Reason      string    `json:"reason"`
	ActorID     uuid.UUID `json:"actor_id"`
}

// Validate checks the command fields.
func (c CancelInterviewCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.InterviewID, sharedApplication.RequiredID),
		validation.Field(&c.Reason, validation.Length(0, 500)),
	)
}

// CancelInterviewHandler handles the CancelInterviewCommand.
type CancelInterviewHandler struct {
	repo        domain.Repository
	coordinator *services.Coordinator
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	metrics     observability.Metrics
	logger      *slog.Logger
}

// NewCancelInterviewHandler creates a new CancelInterviewHandler.
func NewCancelInterviewHandler(
	repo domain.Repository,
	coordinator *services.Coordinator,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	metrics observability.Metrics,
	logger *slog.Logger,
) *CancelInterviewHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CancelInterviewHandler{
		repo:        repo,
		coordinator: coordinator,
		outboxRepo:  outboxRepo,
		uow:         uow,
		metrics:     metrics,
		logger:      logger,
	}
}

// Handle executes the CancelInterviewCommand. The status change and the
// release of every booking commit together. Cancelling a cancelled
// interview releases anything still held and otherwise changes nothing.
func (h *CancelInterviewHandler) Handle(ctx context.Context, cmd CancelInterviewCommand) (interview *domain.Interview, err error) {
	timer := observability.StartTimer("interviews.cancel").
		WithLogger(h.logger).
		WithMetrics(h.metrics)
	defer func() { timer.Stop(err) }()

	if err := cmd.Validate(); err != nil {
		return nil, sharedDomain.Validation(err)
	}
	actor := actorOf(ctx, cmd.ActorID)

	interview, err = h.repo.FindByID(ctx, cmd.InterviewID)
	if err != nil {
		return nil, err
	}
	changed, err := interview.Cancel(cmd.Reason)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if changed {
			if err := save(txCtx, h.repo, h.outboxRepo, interview, actor); err != nil {
				return err
			}
		}
		return h.coordinator.Release(txCtx, interview.ID(), actor)
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return interview, nil
	}

	h.metrics.Counter(observability.MetricInterviewsCancelled, 1)
	h.logger.Info("interview cancelled",
		"interview_id", interview.ID(),
		"reason", interview.CancelReason(),
	)
	return interview, nil
}
