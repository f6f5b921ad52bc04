// Package services coordinates an interview's resource reservations with the
// booking ledger.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	bookingServices "github.com/felixgeelhaar/recruita/internal/booking/application/services"
	bookingDomain "github.com/felixgeelhaar/recruita/internal/booking/domain"
	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
)

// Ledger is the subset of the booking ledger the coordinator drives.
type Ledger interface {
	Book(ctx context.Context, req bookingServices.BookRequest) (*bookingDomain.Booking, error)
	CancelBookingsForInterview(ctx context.Context, interviewID, actor uuid.UUID) (int, error)
	CancelBooking(ctx context.Context, bookingID, actor uuid.UUID) error
}

// Selection is the set of resources requested for an interview.
type Selection struct {
	RoomID   *uuid.UUID
	AssetIDs []uuid.UUID
}

// IsEmpty reports whether nothing was requested.
func (s Selection) IsEmpty() bool {
	return s.RoomID == nil && len(s.AssetIDs) == 0
}

// Requested counts the distinct requested resources.
func (s Selection) Requested() int {
	n := len(s.assets())
	if s.RoomID != nil {
		n++
	}
	return n
}

// assets returns AssetIDs without repeats, in request order.
func (s Selection) assets() []uuid.UUID {
	if len(s.AssetIDs) < 2 {
		return s.AssetIDs
	}
	seen := make(map[uuid.UUID]struct{}, len(s.AssetIDs))
	out := make([]uuid.UUID, 0, len(s.AssetIDs))
	for _, id := range s.AssetIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// BookingFailure is one resource that could not be booked.
type BookingFailure struct {
	Kind       bookingDomain.ResourceKind
	ResourceID uuid.UUID
	Err        error
}

func (f BookingFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Kind, f.ResourceID, f.Err)
}

func (f BookingFailure) Unwrap() error { return f.Err }

// Reservation is the outcome of booking a selection.
type Reservation struct {
	Requested  int
	BookingIDs []uuid.UUID
	Failures   []BookingFailure
}

// Coordinator books an interview's selected resources and releases them
// again.
type Coordinator struct {
	ledger Ledger
	logger *slog.Logger
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(ledger Ledger, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{ledger: ledger, logger: logger}
}

// Reserve books each selected resource over the interview's slot and
// attaches the bookings that succeeded to the interview. A failed resource
// is reported in Failures and does not stop the others. Selections on
// interviews that are not in person are ignored.
func (c *Coordinator) Reserve(ctx context.Context, interview *domain.Interview, selection Selection, actor uuid.UUID) Reservation {
	if selection.IsEmpty() {
		return Reservation{}
	}
	if !interview.NeedsResources() {
		c.logger.Debug("ignoring resource selection for remote interview",
			"interview_id", interview.ID(),
			"type", string(interview.Type()),
		)
		return Reservation{}
	}

	res := Reservation{Requested: selection.Requested()}
	window, err := bookingDomain.NewInterval(interview.ScheduledAt(), interview.EndsAt())
	if err != nil {
		for _, ref := range refs(selection) {
			res.Failures = append(res.Failures, BookingFailure{Kind: ref.Kind, ResourceID: ref.ID, Err: err})
		}
		return res
	}

	for _, ref := range refs(selection) {
		booking, err := c.ledger.Book(ctx, bookingServices.BookRequest{
			OrganizationID: interview.OrganizationID(),
			Resource:       ref,
			InterviewID:    interview.ID(),
			Window:         window,
			BookedBy:       actor,
		})
		if err != nil {
			c.logger.Warn("resource not booked",
				"interview_id", interview.ID(),
				"resource", ref.String(),
				"error", err,
			)
			res.Failures = append(res.Failures, BookingFailure{Kind: ref.Kind, ResourceID: ref.ID, Err: err})
			continue
		}

		res.BookingIDs = append(res.BookingIDs, booking.ID())
		if ref.Kind == bookingDomain.KindRoom {
			interview.AttachRoomBooking(booking.ID())
		} else {
			interview.AttachAssetBooking(booking.ID())
		}
	}
	return res
}

// Release cancels every active booking of the interview.
func (c *Coordinator) Release(ctx context.Context, interviewID, actor uuid.UUID) error {
	_, err := c.ledger.CancelBookingsForInterview(ctx, interviewID, actor)
	return err
}

// Compensate cancels the bookings taken by res. Every booking is attempted;
// the errors are joined.
func (c *Coordinator) Compensate(ctx context.Context, res Reservation, actor uuid.UUID) error {
	var errs []error
	for _, id := range res.BookingIDs {
		if err := c.ledger.CancelBooking(ctx, id, actor); err != nil {
			errs = append(errs, fmt.Errorf("booking %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func refs(selection Selection) []bookingDomain.ResourceRef {
	out := make([]bookingDomain.ResourceRef, 0, selection.Requested())
	if selection.RoomID != nil {
		out = append(out, bookingDomain.RoomRef(*selection.RoomID))
	}
	for _, id := range selection.assets() {
		out = append(out, bookingDomain.AssetRef(id))
	}
	return out
}
