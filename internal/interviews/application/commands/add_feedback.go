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

// AddFeedbackCommand submits one interviewer's assessment.
type AddFeedbackCommand struct {
	InterviewID    uuid.UUID      `json:"interview_id"`
	InterviewerID  uuid.UUID      `json:"interviewer_id"`
	Rating         int            `json:"rating"`
	Recommendation string         `json:"recommendation"`
	SectionScores  map[string]int `json:"section_scores,omitempty"`
	Comments       string         `json:"comments"`
}

// Validate checks the command fields. Rating and score ranges are enforced
// by the domain.
func (c AddFeedbackCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.InterviewID, sharedApplication.RequiredID),
		validation.Field(&c.InterviewerID, sharedApplication.RequiredID),
		validation.Field(&c.Recommendation, validation.Required),
		validation.Field(&c.Comments, validation.Length(0, 10000)),
	)
}

// AddFeedbackHandler handles the AddFeedbackCommand.
type AddFeedbackHandler struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	policy     domain.CompletionPolicy
	metrics    observability.Metrics
	logger     *slog.Logger
}

// NewAddFeedbackHandler creates a new AddFeedbackHandler.
func NewAddFeedbackHandler(
	repo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	policy domain.CompletionPolicy,
	metrics observability.Metrics,
	logger *slog.Logger,
) *AddFeedbackHandler {
	if !policy.IsValid() {
		policy = domain.CompleteOnAnyFeedback
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AddFeedbackHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
		policy:     policy,
		metrics:    metrics,
		logger:     logger,
	}
}

// Handle executes the AddFeedbackCommand.
func (h *AddFeedbackHandler) Handle(ctx context.Context, cmd AddFeedbackCommand) (*AddFeedbackResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, sharedDomain.Validation(err)
	}

	feedback, err := domain.NewFeedback(
		cmd.InterviewerID,
		cmd.Rating,
		domain.Recommendation(cmd.Recommendation),
		cmd.SectionScores,
		cmd.Comments,
	)
	if err != nil {
		return nil, err
	}

	result, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*AddFeedbackResult, error) {
		interview, err := h.repo.FindByID(txCtx, cmd.InterviewID)
		if err != nil {
			return nil, err
		}
		completed, err := interview.AddFeedback(feedback, h.policy)
		if err != nil {
			return nil, err
		}
		if err := save(txCtx, h.repo, h.outboxRepo, interview, cmd.InterviewerID); err != nil {
			return nil, err
		}
		return &AddFeedbackResult{Interview: interview, Completed: completed}, nil
	})
	if err != nil {
		return nil, err
	}

	if result.Completed {
		h.metrics.Counter(observability.MetricInterviewsCompleted, 1, observability.T("status", string(domain.StatusCompleted)))
	}
	h.logger.Info("interview feedback added",
		"interview_id", result.Interview.ID(),
		"interviewer_id", cmd.InterviewerID,
		"completed", result.Completed,
	)
	return result, nil
}
