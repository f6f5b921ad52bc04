package domain

import (
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Booking reserves one resource for one interview over a window. Bookings
// are never deleted; cancelling keeps the record for the audit trail.
type Booking struct {
	sharedDomain.BaseEntity
	organizationID uuid.UUID
	resource       ResourceRef
	interviewID    uuid.UUID
	window         Interval
	status         Status
	bookedBy       uuid.UUID
	cancelledBy    *uuid.UUID
	cancelledAt    *time.Time
}

// NewBooking creates an active booking.
func NewBooking(organizationID uuid.UUID, resource ResourceRef, interviewID uuid.UUID, window Interval, bookedBy uuid.UUID) (*Booking, error) {
	if !resource.Kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if interviewID == uuid.Nil {
		return nil, ErrMissingInterview
	}
	if !window.Start.Before(window.End) {
		return nil, ErrInvalidWindow
	}

	return &Booking{
		BaseEntity:     sharedDomain.NewBaseEntity(),
		organizationID: organizationID,
		resource:       resource,
		interviewID:    interviewID,
		window:         window,
		status:         StatusActive,
		bookedBy:       bookedBy,
	}, nil
}

func (b *Booking) OrganizationID() uuid.UUID { return b.organizationID }
func (b *Booking) Resource() ResourceRef     { return b.resource }
func (b *Booking) InterviewID() uuid.UUID    { return b.interviewID }
func (b *Booking) Window() Interval          { return b.window }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) BookedBy() uuid.UUID       { return b.bookedBy }
func (b *Booking) CancelledBy() *uuid.UUID   { return b.cancelledBy }
func (b *Booking) CancelledAt() *time.Time   { return b.cancelledAt }
func (b *Booking) IsActive() bool            { return b.status == StatusActive }

// Conflicts reports whether b holds the same resource over an overlapping
// window. Cancelled bookings never conflict.
func (b *Booking) Conflicts(resource ResourceRef, window Interval) bool {
	return b.IsActive() && b.resource == resource && b.window.Overlaps(window)
}

// Cancel releases the resource. It returns false when the booking was
// already cancelled, leaving the original cancellation untouched.
func (b *Booking) Cancel(actor uuid.UUID) bool {
	if b.status == StatusCancelled {
		return false
	}
	now := time.Now().UTC()
	b.status = StatusCancelled
	b.cancelledBy = &actor
	b.cancelledAt = &now
	b.Touch()
	return true
}

// RehydrateBooking recreates a booking from persisted state.
func RehydrateBooking(
	id uuid.UUID,
	organizationID uuid.UUID,
	resource ResourceRef,
	interviewID uuid.UUID,
	window Interval,
	status Status,
	bookedBy uuid.UUID,
	cancelledBy *uuid.UUID,
	cancelledAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		BaseEntity:     sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		organizationID: organizationID,
		resource:       resource,
		interviewID:    interviewID,
		window:         window,
		status:         status,
		bookedBy:       bookedBy,
		cancelledBy:    cancelledBy,
		cancelledAt:    cancelledAt,
	}
}
