package commands

import (
	"context"
	"errors"
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

// ScheduleInterviewCommand schedules an interview for an application and
// optionally books a room and assets for it.
type ScheduleInterviewCommand struct {
	OrganizationID  uuid.UUID   `json:"organization_id"`
	ApplicationID   uuid.UUID   `json:"application_id"`
	Title           string      `json:"title"`
	Type            string      `json:"type"`
	InterviewerIDs  []uuid.UUID `json:"interviewer_ids"`
	ScheduledAt     string      `json:"scheduled_at"`
	DurationMinutes int         `json:"duration_minutes"`
	Location        string      `json:"location"`
	MeetingURL      string      `json:"meeting_url"`
	RoomID          *uuid.UUID  `json:"room_id,omitempty"`
	AssetIDs        []uuid.UUID `json:"asset_ids,omitempty"`
	ActorID         uuid.UUID   `json:"actor_id"`
}

// Validate checks the command fields.
func (c ScheduleInterviewCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OrganizationID, sharedApplication.RequiredID),
		validation.Field(&c.ApplicationID, sharedApplication.RequiredID),
		validation.Field(&c.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Type, validation.Required, validation.In(interviewTypes()...)),
		validation.Field(&c.InterviewerIDs, validation.Required, validation.Each(sharedApplication.RequiredID)),
		validation.Field(&c.ScheduledAt, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&c.DurationMinutes, validation.Required, validation.Min(1)),
		validation.Field(&c.AssetIDs, validation.Each(sharedApplication.RequiredID)),
	)
}

func (c ScheduleInterviewCommand) selection() services.Selection {
	return services.Selection{RoomID: c.RoomID, AssetIDs: c.AssetIDs}
}

// ScheduleInterviewHandler handles the ScheduleInterviewCommand.
type ScheduleInterviewHandler struct {
	repo        domain.Repository
	coordinator *services.Coordinator
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	policy      BookingFailurePolicy
	metrics     observability.Metrics
	logger      *slog.Logger
}

// NewScheduleInterviewHandler creates a new ScheduleInterviewHandler.
func NewScheduleInterviewHandler(
	repo domain.Repository,
	coordinator *services.Coordinator,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	policy BookingFailurePolicy,
	metrics observability.Metrics,
	logger *slog.Logger,
) *ScheduleInterviewHandler {
	if !policy.IsValid() {
		policy = KeepOnBookingFailure
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleInterviewHandler{
		repo:        repo,
		coordinator: coordinator,
		outboxRepo:  outboxRepo,
		uow:         uow,
		policy:      policy,
		metrics:     metrics,
		logger:      logger,
	}
}

// Handle executes the ScheduleInterviewCommand. Under the partial policy a
// failed booking leaves the interview scheduled and is reported in the
// result; under the abort policy nothing is saved and the booking error is
// returned.
func (h *ScheduleInterviewHandler) Handle(ctx context.Context, cmd ScheduleInterviewCommand) (result *ScheduleInterviewResult, err error) {
	timer := observability.StartTimer("interviews.schedule").
		WithLogger(h.logger).
		WithMetrics(h.metrics, observability.T("policy", string(h.policy)))
	defer func() { timer.Stop(err) }()

	if err := cmd.Validate(); err != nil {
		return nil, sharedDomain.Validation(err)
	}
	scheduledAt, _ := time.Parse(time.RFC3339, cmd.ScheduledAt)

	interview, err := domain.NewInterview(
		cmd.OrganizationID,
		cmd.ApplicationID,
		cmd.Title,
		domain.InterviewType(cmd.Type),
		cmd.InterviewerIDs,
		scheduledAt,
		cmd.DurationMinutes,
		cmd.Location,
		cmd.MeetingURL,
	)
	if err != nil {
		return nil, err
	}
	actor := actorOf(ctx, cmd.ActorID)

	var res services.Reservation
	if h.policy == AbortOnBookingFailure {
		res, err = h.bookThenSave(ctx, interview, cmd.selection(), actor)
	} else {
		res, err = h.saveThenBook(ctx, interview, cmd.selection(), actor)
	}
	if err != nil {
		return nil, err
	}

	h.metrics.Counter(observability.MetricInterviewsScheduled, 1, observability.T("type", cmd.Type))
	if len(res.Failures) > 0 {
		h.metrics.Counter(observability.MetricPartialFailures, 1, observability.T("operation", "schedule"))
	}
	h.logger.Info("interview scheduled",
		"interview_id", interview.ID(),
		"application_id", interview.ApplicationID(),
		"scheduled_at", interview.ScheduledAt(),
		"bookings", len(res.BookingIDs),
		"failed_bookings", len(res.Failures),
	)

	return &ScheduleInterviewResult{
		Interview: interview,
		Outcome:   outcomeOf(res),
		Failures:  res.Failures,
	}, nil
}

// saveThenBook persists the interview, books what it can and saves the
// booking references that were obtained.
func (h *ScheduleInterviewHandler) saveThenBook(ctx context.Context, interview *domain.Interview, selection services.Selection, actor uuid.UUID) (services.Reservation, error) {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return save(txCtx, h.repo, h.outboxRepo, interview, actor)
	})
	if err != nil {
		return services.Reservation{}, err
	}

	res := h.coordinator.Reserve(ctx, interview, selection, actor)
	if len(res.BookingIDs) == 0 {
		return res, nil
	}
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return save(txCtx, h.repo, h.outboxRepo, interview, actor)
	})
	if err != nil {
		compensate(ctx, h.coordinator, h.logger, interview, res, actor)
		return res, err
	}
	return res, nil
}

// bookThenSave takes every booking first and persists the interview only
// when all of them succeeded.
func (h *ScheduleInterviewHandler) bookThenSave(ctx context.Context, interview *domain.Interview, selection services.Selection, actor uuid.UUID) (services.Reservation, error) {
	res := h.coordinator.Reserve(ctx, interview, selection, actor)
	if len(res.Failures) > 0 {
		compensate(ctx, h.coordinator, h.logger, interview, res, actor)
		errs := make([]error, 0, len(res.Failures))
		for _, f := range res.Failures {
			errs = append(errs, f)
		}
		return res, sharedDomain.Wrap(sharedDomain.KindResourceConflict, "interview not scheduled", errors.Join(errs...))
	}

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return save(txCtx, h.repo, h.outboxRepo, interview, actor)
	})
	if err != nil {
		compensate(ctx, h.coordinator, h.logger, interview, res, actor)
		return res, err
	}
	return res, nil
}

func interviewTypes() []any {
	out := make([]any, 0, len(domain.InterviewTypes))
	for _, t := range domain.InterviewTypes {
		out = append(out, string(t))
	}
	return out
}
