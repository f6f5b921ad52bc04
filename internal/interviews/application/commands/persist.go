package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/application/services"
	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// save writes the interview and its pending events to the outbox in the
// transaction carried by ctx.
func save(ctx context.Context, repo domain.Repository, outboxRepo outbox.Repository, interview *domain.Interview, actor uuid.UUID) error {
	if err := repo.Save(ctx, interview); err != nil {
		return err
	}

	events := interview.DomainEvents()
	if len(events) == 0 {
		return nil
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, actor))
	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	if err := outboxRepo.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	interview.ClearDomainEvents()
	return nil
}

// actorOf falls back to the actor carried by the request context.
func actorOf(ctx context.Context, actor uuid.UUID) uuid.UUID {
	if actor != uuid.Nil {
		return actor
	}
	if id, err := uuid.Parse(observability.ActorIDFromContext(ctx)); err == nil {
		return id
	}
	return uuid.Nil
}

// loadActive loads an interview that can still move. Terminal interviews
// are reported as not active.
func loadActive(ctx context.Context, repo domain.Repository, id uuid.UUID) (*domain.Interview, error) {
	interview, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.Status().IsTerminal() {
		return nil, domain.ErrInterviewNotActive
	}
	return interview, nil
}

// compensate cancels the bookings of a reservation whose interview could not
// be saved, so no booking outlives the reference to it.
func compensate(ctx context.Context, coordinator *services.Coordinator, logger *slog.Logger, interview *domain.Interview, res services.Reservation, actor uuid.UUID) {
	if err := coordinator.Compensate(ctx, res, actor); err != nil {
		logger.Error("failed to release bookings of unsaved interview",
			"interview_id", interview.ID(),
			"bookings", len(res.BookingIDs),
			"error", err,
		)
	}
}
