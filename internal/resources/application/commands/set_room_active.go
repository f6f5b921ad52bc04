package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
)

// SetRoomActiveCommand takes a room in or out of service.
type SetRoomActiveCommand struct {
	OrganizationID uuid.UUID
	RoomID         uuid.UUID
	Active         bool
}

// SetRoomActiveHandler handles the SetRoomActiveCommand. Existing bookings
// are left alone; an inactive room simply stops being offered.
type SetRoomActiveHandler struct {
	repo domain.RoomRepository
	uow  sharedApplication.UnitOfWork
}

// NewSetRoomActiveHandler creates a new SetRoomActiveHandler.
func NewSetRoomActiveHandler(repo domain.RoomRepository, uow sharedApplication.UnitOfWork) *SetRoomActiveHandler {
	return &SetRoomActiveHandler{repo: repo, uow: uow}
}

// Handle executes the SetRoomActiveCommand.
func (h *SetRoomActiveHandler) Handle(ctx context.Context, cmd SetRoomActiveCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		room, err := h.repo.FindByID(txCtx, cmd.RoomID)
		if err != nil {
			return err
		}
		if room.OrganizationID() != cmd.OrganizationID {
			return domain.ErrRoomNotFound
		}

		room.SetActive(cmd.Active)
		return h.repo.Save(txCtx, room)
	})
}
