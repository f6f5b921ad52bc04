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

// RecordNoShowCommand records that the candidate did not attend.
type RecordNoShowCommand struct {
	InterviewID uuid.UUID `json:"interview_id"`
	ActorID     uuid.UUID `json:"actor_id"`
}

// RecordNoShowHandler handles the RecordNoShowCommand.
type RecordNoShowHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	metrics    observability.Metrics
	logger     *slog.Logger
}

// NewRecordNoShowHandler creates a new RecordNoShowHandler.
func NewRecordNoShowHandler(
	repo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	metrics observability.Metrics,
	logger *slog.Logger,
) *RecordNoShowHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordNoShowHandler{repo: repo, outboxRepo: outboxRepo, uow: uow, metrics: metrics, logger: logger}
}

// Handle executes the RecordNoShowCommand.
func (h *RecordNoShowHandler) Handle(ctx context.Context, cmd RecordNoShowCommand) (*domain.Interview, error) {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.InterviewID, sharedApplication.RequiredID),
	)
	if err != nil {
		return nil, sharedDomain.Validation(err)
	}
	actor := actorOf(ctx, cmd.ActorID)

	interview, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.Interview, error) {
		interview, err := h.repo.FindByID(txCtx, cmd.InterviewID)
		if err != nil {
			return nil, err
		}
		if err := interview.MarkNoShow(); err != nil {
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

	h.metrics.Counter(observability.MetricInterviewsCompleted, 1, observability.T("status", string(domain.StatusNoShow)))
	h.logger.Info("candidate no-show recorded", "interview_id", interview.ID())
	return interview, nil
}
