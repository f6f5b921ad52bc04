package commands

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

// RegisterAssetCommand adds a piece of equipment to the catalog.
type RegisterAssetCommand struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
}

// Validate checks the command fields.
func (c RegisterAssetCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OrganizationID, sharedApplication.RequiredID),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&c.Category, validation.Required, validation.Length(1, 60)),
	)
}

// RegisterAssetResult contains the result of registering an asset.
type RegisterAssetResult struct {
	AssetID uuid.UUID
}

// RegisterAssetHandler handles the RegisterAssetCommand.
type RegisterAssetHandler struct {
	repo domain.AssetRepository
	uow  sharedApplication.UnitOfWork
}

// NewRegisterAssetHandler creates a new RegisterAssetHandler.
func NewRegisterAssetHandler(repo domain.AssetRepository, uow sharedApplication.UnitOfWork) *RegisterAssetHandler {
	return &RegisterAssetHandler{repo: repo, uow: uow}
}

// Handle executes the RegisterAssetCommand.
func (h *RegisterAssetHandler) Handle(ctx context.Context, cmd RegisterAssetCommand) (*RegisterAssetResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, sharedDomain.Validation(err)
	}

	asset, err := domain.NewAsset(cmd.OrganizationID, cmd.Name, cmd.Category, cmd.Location)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.repo.Save(txCtx, asset)
	})
	if err != nil {
		return nil, err
	}

	return &RegisterAssetResult{AssetID: asset.ID()}, nil
}
