package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists bookings.
type Repository interface {
	Save(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindActiveForResource returns the active bookings on resource whose
	// windows overlap window.
	FindActiveForResource(ctx context.Context, resource ResourceRef, window Interval) ([]*Booking, error)

	// FindActiveInWindow returns every active booking of the organization
	// and kind that overlaps window.
	FindActiveInWindow(ctx context.Context, organizationID uuid.UUID, kind ResourceKind, window Interval) ([]*Booking, error)

	// FindByInterview returns all bookings of an interview, oldest first.
	FindByInterview(ctx context.Context, interviewID uuid.UUID) ([]*Booking, error)

	// LockResource serializes writers on resource for the rest of the
	// ambient transaction. Stores with a single writer implement it as a
	// no-op.
	LockResource(ctx context.Context, resource ResourceRef) error
}
