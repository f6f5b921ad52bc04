package domain

import sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"

var (
	ErrRoomNotFound    = sharedDomain.NewError(sharedDomain.KindNotFound, "room not found")
	ErrAssetNotFound   = sharedDomain.NewError(sharedDomain.KindNotFound, "asset not found")
	ErrDuplicateName   = sharedDomain.NewError(sharedDomain.KindResourceConflict, "a resource with this name already exists")
	ErrEmptyName       = sharedDomain.NewError(sharedDomain.KindValidation, "name cannot be empty")
	ErrInvalidCapacity = sharedDomain.NewError(sharedDomain.KindValidation, "capacity must be positive")
	ErrEmptyCategory   = sharedDomain.NewError(sharedDomain.KindValidation, "asset category cannot be empty")
	ErrInvalidStatus   = sharedDomain.NewError(sharedDomain.KindValidation, "invalid asset status")
	ErrMissingOrgID    = sharedDomain.NewError(sharedDomain.KindValidation, "organization id is required")
	ErrAssetRetired    = sharedDomain.NewError(sharedDomain.KindInvalidTransition, "retired assets cannot change status")
)
