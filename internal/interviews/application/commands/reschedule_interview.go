package commands

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/application/services"
	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// RescheduleInterviewCommand moves an interview to a new start time and
// books a fresh selection of resources for it.
type RescheduleInterviewCommand struct {
	InterviewID uuid.UUID   `json:"interview_id"`
	NewStart    string      `json:"new_start"`
	Reason      string      `json:"reason"`
	RoomID      *uuid.UUID  `json:"room_id,omitempty"`
	AssetIDs    []uuid.UUID `json:"asset_ids,omitempty"`
	ActorID     uuid.UUID   `json:"actor_id"`
}

// Validate checks the command fields.
func (c RescheduleInterviewCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.InterviewID, sharedApplication.RequiredID),
		validation.Field(&c.NewStart, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&c.Reason, validation.Length(0, 500)),
		validation.Field(&c.AssetIDs, validation.Each(sharedApplication.RequiredID)),
	)
}

// RescheduleInterviewHandler handles the RescheduleInterviewCommand.
type RescheduleInterviewHandler struct {
	repo        domain.Repository
	coordinator *services.Coordinator
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	metrics     observability.Metrics
	logger      *slog.Logger
}

// NewRescheduleInterviewHandler creates a new RescheduleInterviewHandler.
func NewRescheduleInterviewHandler(
	repo domain.Repository,
	coordinator *services.Coordinator,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	metrics observability.Metrics,
	logger *slog.Logger,
) *RescheduleInterviewHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RescheduleInterviewHandler{
		repo:        repo,
		coordinator: coordinator,
		outboxRepo:  outboxRepo,
		uow:         uow,
		metrics:     metrics,
		logger:      logger,
	}
}

// Handle executes the RescheduleInterviewCommand. The new slot is saved
// and the old bookings are released in one unit of work, then the new
// selection is booked, so the interview may rebook the resources it held
// before. Bookings that cannot be taken are reported in the result and do
// not undo the move.
func (h *RescheduleInterviewHandler) Handle(ctx context.Context, cmd RescheduleInterviewCommand) (result *RescheduleInterviewResult, err error) {
	timer := observability.StartTimer("interviews.reschedule").
		WithLogger(h.logger).
		WithMetrics(h.metrics)
	defer func() { timer.Stop(err) }()

	if err := cmd.Validate(); err != nil {
		return nil, sharedDomain.Validation(err)
	}
	newStart, _ := time.Parse(time.RFC3339, cmd.NewStart)
	actor := actorOf(ctx, cmd.ActorID)

	interview, err := loadActive(ctx, h.repo, cmd.InterviewID)
	if err != nil {
		return nil, err
	}
	previous := interview.ScheduledAt()

	if err := interview.Reschedule(newStart, cmd.Reason); err != nil {
		return nil, err
	}
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := save(txCtx, h.repo, h.outboxRepo, interview, actor); err != nil {
			return err
		}
		return h.coordinator.Release(txCtx, interview.ID(), actor)
	})
	if err != nil {
		return nil, err
	}

	selection := services.Selection{RoomID: cmd.RoomID, AssetIDs: cmd.AssetIDs}
	res := h.coordinator.Reserve(ctx, interview, selection, actor)
	if len(res.BookingIDs) > 0 {
		err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			return save(txCtx, h.repo, h.outboxRepo, interview, actor)
		})
		if err != nil {
			compensate(ctx, h.coordinator, h.logger, interview, res, actor)
			return nil, err
		}
	}

	h.metrics.Counter(observability.MetricInterviewsRescheduled, 1)
	if len(res.Failures) > 0 {
		h.metrics.Counter(observability.MetricPartialFailures, 1, observability.T("operation", "reschedule"))
	}
	h.logger.Info("interview rescheduled",
		"interview_id", interview.ID(),
		"previous_start", previous,
		"scheduled_at", interview.ScheduledAt(),
		"reschedule_count", interview.RescheduleCount(),
		"failed_bookings", len(res.Failures),
	)

	return &RescheduleInterviewResult{
		Interview: interview,
		Outcome:   outcomeOf(res),
		Failures:  res.Failures,
	}, nil
}
