package api

import (
	"fmt"

	"github.com/google/uuid"

	internalApp "github.com/felixgeelhaar/recruita/internal/app"
)

// NewFromContainer builds the server with every handler the container wired.
func NewFromContainer(c *internalApp.Container, cfg ServerConfig) (*Server, error) {
	orgID, err := uuid.Parse(c.Config.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid RECRUITA_ORG_ID: %w", err)
	}
	actorID, err := uuid.Parse(c.Config.ActorID)
	if err != nil {
		return nil, fmt.Errorf("invalid RECRUITA_ACTOR_ID: %w", err)
	}

	interviews := NewInterviewHandler(InterviewHandlerConfig{
		Schedule:   c.ScheduleInterviewHandler,
		Reschedule: c.RescheduleInterviewHandler,
		Cancel:     c.CancelInterviewHandler,
		Complete:   c.CompleteInterviewHandler,
		NoShow:     c.RecordNoShowHandler,
		Feedback:   c.AddFeedbackHandler,
		Get:        c.GetInterviewHandler,
		Bookings:   c.ListBookingsForInterviewHandler,
		Defaults:   Identity{OrganizationID: orgID, ActorID: actorID},
		Logger:     c.Logger,
	})
	availability := NewAvailabilityHandler(c.ListAvailableRoomsHandler, c.ListAvailableAssetsHandler, orgID, c.Logger)

	return NewServer(cfg, interviews, availability, c.Health, c.Logger), nil
}
