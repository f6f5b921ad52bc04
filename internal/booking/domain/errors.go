package domain

import sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"

var (
	ErrResourceUnavailable = sharedDomain.NewError(sharedDomain.KindResourceConflict, "resource is already booked for the requested window")
	ErrResourceInactive    = sharedDomain.NewError(sharedDomain.KindResourceConflict, "resource is not in service")
	ErrResourceNotFound    = sharedDomain.NewError(sharedDomain.KindNotFound, "resource not found")
	ErrBookingNotFound     = sharedDomain.NewError(sharedDomain.KindNotFound, "booking not found")
	ErrInvalidWindow       = sharedDomain.NewError(sharedDomain.KindValidation, "booking window must end after it starts")
	ErrInvalidKind         = sharedDomain.NewError(sharedDomain.KindValidation, "resource kind must be room or asset")
	ErrMissingInterview    = sharedDomain.NewError(sharedDomain.KindValidation, "booking requires an interview id")
)
