package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
)

// SetAssetStatusCommand changes an asset's operational status.
type SetAssetStatusCommand struct {
	OrganizationID uuid.UUID
	AssetID        uuid.UUID
	Status         string
}

// SetAssetStatusHandler handles the SetAssetStatusCommand.
type SetAssetStatusHandler struct {
	repo domain.AssetRepository
	uow  sharedApplication.UnitOfWork
}

// NewSetAssetStatusHandler creates a new SetAssetStatusHandler.
func NewSetAssetStatusHandler(repo domain.AssetRepository, uow sharedApplication.UnitOfWork) *SetAssetStatusHandler {
	return &SetAssetStatusHandler{repo: repo, uow: uow}
}

// Handle executes the SetAssetStatusCommand.
func (h *SetAssetStatusHandler) Handle(ctx context.Context, cmd SetAssetStatusCommand) error {
	status := domain.AssetStatus(cmd.Status)
	if !status.IsValid() {
		return domain.ErrInvalidStatus
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		asset, err := h.repo.FindByID(txCtx, cmd.AssetID)
		if err != nil {
			return err
		}
		if asset.OrganizationID() != cmd.OrganizationID {
			return domain.ErrAssetNotFound
		}

		if err := asset.SetStatus(status); err != nil {
			return err
		}
		return h.repo.Save(txCtx, asset)
	})
}
