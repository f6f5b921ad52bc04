package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	internalApp "github.com/felixgeelhaar/recruita/internal/app"
	bookingQueries "github.com/felixgeelhaar/recruita/internal/booking/application/queries"
	interviewCommands "github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	interviewQueries "github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
	resourceCommands "github.com/felixgeelhaar/recruita/internal/resources/application/commands"
	resourceQueries "github.com/felixgeelhaar/recruita/internal/resources/application/queries"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// OrganizationID scopes every catalog and availability command.
	OrganizationID uuid.UUID
	// ActorID is recorded on bookings and events the CLI causes.
	ActorID uuid.UUID

	// Catalog Handlers
	RegisterRoomHandler   *resourceCommands.RegisterRoomHandler
	RegisterAssetHandler  *resourceCommands.RegisterAssetHandler
	SetRoomActiveHandler  *resourceCommands.SetRoomActiveHandler
	SetAssetStatusHandler *resourceCommands.SetAssetStatusHandler
	ListRoomsHandler      *resourceQueries.ListRoomsHandler
	ListAssetsHandler     *resourceQueries.ListAssetsHandler

	// Availability Handlers
	ListAvailableRoomsHandler       *bookingQueries.ListAvailableRoomsHandler
	ListAvailableAssetsHandler      *bookingQueries.ListAvailableAssetsHandler
	ListBookingsForInterviewHandler *bookingQueries.ListBookingsForInterviewHandler

	// Interview Command Handlers
	ScheduleInterviewHandler   *interviewCommands.ScheduleInterviewHandler
	RescheduleInterviewHandler *interviewCommands.RescheduleInterviewHandler
	CancelInterviewHandler     *interviewCommands.CancelInterviewHandler
	CompleteInterviewHandler   *interviewCommands.CompleteInterviewHandler
	RecordNoShowHandler        *interviewCommands.RecordNoShowHandler
	AddFeedbackHandler         *interviewCommands.AddFeedbackHandler

	// Interview Query Handlers
	GetInterviewHandler                 *interviewQueries.GetInterviewHandler
	ListInterviewsForApplicationHandler *interviewQueries.ListInterviewsForApplicationHandler

	// DrainEvents delivers committed events before the process exits.
	DrainEvents func(ctx context.Context) error

	// Health checks the database and, when configured, Redis.
	Health *observability.HealthRegistry
}

// NewApp creates the CLI application from a wired container.
func NewApp(c *internalApp.Container) (*App, error) {
	orgID, err := uuid.Parse(c.Config.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid RECRUITA_ORG_ID: %w", err)
	}
	actorID, err := uuid.Parse(c.Config.ActorID)
	if err != nil {
		return nil, fmt.Errorf("invalid RECRUITA_ACTOR_ID: %w", err)
	}

	return &App{
		OrganizationID: orgID,
		ActorID:        actorID,

		RegisterRoomHandler:   c.RegisterRoomHandler,
		RegisterAssetHandler:  c.RegisterAssetHandler,
		SetRoomActiveHandler:  c.SetRoomActiveHandler,
		SetAssetStatusHandler: c.SetAssetStatusHandler,
		ListRoomsHandler:      c.ListRoomsHandler,
		ListAssetsHandler:     c.ListAssetsHandler,

		ListAvailableRoomsHandler:       c.ListAvailableRoomsHandler,
		ListAvailableAssetsHandler:      c.ListAvailableAssetsHandler,
		ListBookingsForInterviewHandler: c.ListBookingsForInterviewHandler,

		ScheduleInterviewHandler:   c.ScheduleInterviewHandler,
		RescheduleInterviewHandler: c.RescheduleInterviewHandler,
		CancelInterviewHandler:     c.CancelInterviewHandler,
		CompleteInterviewHandler:   c.CompleteInterviewHandler,
		RecordNoShowHandler:        c.RecordNoShowHandler,
		AddFeedbackHandler:         c.AddFeedbackHandler,

		GetInterviewHandler:                 c.GetInterviewHandler,
		ListInterviewsForApplicationHandler: c.ListInterviewsForApplicationHandler,

		DrainEvents: c.DrainEvents,
		Health:      c.Health,
	}, nil
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
