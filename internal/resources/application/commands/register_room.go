package commands

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

// RegisterRoomCommand adds a room to an organization's catalog.
type RegisterRoomCommand struct {
	OrganizationID     uuid.UUID `json:"organization_id"`
	Name               string    `json:"name"`
	Capacity           int       `json:"capacity"`
	Location           string    `json:"location"`
	Equipment          []string  `json:"equipment"`
	HasVideoConference bool      `json:"has_video_conference"`
}

// Validate checks the command fields.
func (c RegisterRoomCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OrganizationID, sharedApplication.RequiredID),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.Location, validation.Length(0, 200)),
	)
}

// RegisterRoomResult contains the result of registering a room.
type RegisterRoomResult struct {
	RoomID uuid.UUID
}

// RegisterRoomHandler handles the RegisterRoomCommand.
type RegisterRoomHandler struct {
	repo domain.RoomRepository
	uow  sharedApplication.UnitOfWork
}

// NewRegisterRoomHandler creates a new RegisterRoomHandler.
func NewRegisterRoomHandler(repo domain.RoomRepository, uow sharedApplication.UnitOfWork) *RegisterRoomHandler {
	return &RegisterRoomHandler{repo: repo, uow: uow}
}

// Handle executes the RegisterRoomCommand.
func (h *RegisterRoomHandler) Handle(ctx context.Context, cmd RegisterRoomCommand) (*RegisterRoomResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, sharedDomain.Validation(err)
	}

	room, err := domain.NewRoom(cmd.OrganizationID, cmd.Name, cmd.Capacity, cmd.Location, cmd.Equipment, cmd.HasVideoConference)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.repo.Save(txCtx, room)
	})
	if err != nil {
		return nil, err
	}

	return &RegisterRoomResult{RoomID: room.ID()}, nil
}
