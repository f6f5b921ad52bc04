// Package services holds the booking ledger, the only component that decides
// whether a resource may be reserved.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/booking/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// Availability pairs a catalog resource with whether it is free over the
// queried window.
type Availability struct {
	Resource  domain.Resource
	Available bool
}

// BookRequest describes one reservation.
type BookRequest struct {
	OrganizationID uuid.UUID
	Resource       domain.ResourceRef
	InterviewID    uuid.UUID
	Window         domain.Interval
	BookedBy       uuid.UUID
}

// Ledger arbitrates resource contention. Book runs its re-check and insert
// while holding the resource's lock, so two bookings of the same resource
// are decided one after the other while different resources proceed in
// parallel.
type Ledger struct {
	bookings domain.Repository
	catalog  domain.Catalog
	locker   lock.Locker
	uow      sharedApplication.UnitOfWork
	metrics  observability.Metrics
	logger   *slog.Logger
}

// NewLedger creates a new Ledger.
func NewLedger(
	bookings domain.Repository,
	catalog domain.Catalog,
	locker lock.Locker,
	uow sharedApplication.UnitOfWork,
	metrics observability.Metrics,
	logger *slog.Logger,
) *Ledger {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		bookings: bookings,
		catalog:  catalog,
		locker:   locker,
		uow:      uow,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListAvailability returns every active catalog resource of kind matching
// filter, in catalog order, flagged with whether it is free over window.
// Booked resources are reported, never omitted.
func (l *Ledger) ListAvailability(
	ctx context.Context,
	organizationID uuid.UUID,
	kind domain.ResourceKind,
	window domain.Interval,
	filter domain.ResourceFilter,
) ([]Availability, error) {
	if !kind.IsValid() {
		return nil, domain.ErrInvalidKind
	}
	if !window.Start.Before(window.End) {
		return nil, domain.ErrInvalidWindow
	}

	resources, err := l.catalog.ListResources(ctx, organizationID, kind, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s resources: %w", kind, err)
	}
	if len(resources) == 0 {
		return []Availability{}, nil
	}

	booked, err := l.bookings.FindActiveInWindow(ctx, organizationID, kind, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	idx := domain.NewAvailabilityIndex(booked)

	result := make([]Availability, 0, len(resources))
	for _, resource := range resources {
		result = append(result, Availability{
			Resource:  resource,
			Available: idx.IsFree(resource.Ref, window),
		})
	}
	return result, nil
}

// CheckAvailability reports whether ref has no active booking overlapping
// window. Unknown resources are ErrResourceNotFound.
func (l *Ledger) CheckAvailability(ctx context.Context, ref domain.ResourceRef, window domain.Interval) (bool, error) {
	if !window.Start.Before(window.End) {
		return false, domain.ErrInvalidWindow
	}
	if _, err := l.catalog.FindResource(ctx, ref); err != nil {
		return false, err
	}
	return l.isFree(ctx, ref, window)
}

func (l *Ledger) isFree(ctx context.Context, ref domain.ResourceRef, window domain.Interval) (bool, error) {
	existing, err := l.bookings.FindActiveForResource(ctx, ref, window)
	if err != nil {
		return false, fmt.Errorf("failed to load bookings for %s: %w", ref, err)
	}
	for _, b := range existing {
		if b.Conflicts(ref, window) {
			return false, nil
		}
	}
	return true, nil
}

// Book reserves req.Resource for req.InterviewID. The resource must exist
// in the organization and be in service. If another active booking overlaps
// the window the result is ErrResourceUnavailable and nothing is written.
func (l *Ledger) Book(ctx context.Context, req BookRequest) (booking *domain.Booking, err error) {
	timer := observability.StartTimer("booking.book").
		WithLogger(l.logger).
		WithMetrics(l.metrics, observability.T("kind", string(req.Resource.Kind)))
	defer func() { timer.Stop(ignoreConflict(err)) }()

	if !req.Window.Start.Before(req.Window.End) {
		return nil, domain.ErrInvalidWindow
	}
	resource, err := l.catalog.FindResource(ctx, req.Resource)
	if err != nil {
		return nil, err
	}
	if resource.OrganizationID != req.OrganizationID {
		return nil, domain.ErrResourceNotFound
	}
	if !resource.Active {
		return nil, domain.ErrResourceInactive
	}

	waitStart := time.Now()
	release, err := l.locker.Acquire(ctx, req.Resource.String())
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", req.Resource, err)
	}
	defer func() {
		if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
			l.logger.Warn("failed to release resource lock", "resource", req.Resource.String(), "error", relErr)
		}
	}()
	l.metrics.Timing(observability.MetricLockWait, time.Since(waitStart), observability.T("kind", string(req.Resource.Kind)))

	booking, err = sharedApplication.InUnitOfWork(ctx, l.uow, func(txCtx context.Context) (*domain.Booking, error) {
		if err := l.bookings.LockResource(txCtx, req.Resource); err != nil {
			return nil, err
		}
		free, err := l.isFree(txCtx, req.Resource, req.Window)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, domain.ErrResourceUnavailable
		}

		b, err := domain.NewBooking(req.OrganizationID, req.Resource, req.InterviewID, req.Window, req.BookedBy)
		if err != nil {
			return nil, err
		}
		if err := l.bookings.Save(txCtx, b); err != nil {
			return nil, fmt.Errorf("failed to save booking: %w", err)
		}
		return b, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrResourceUnavailable) {
			l.metrics.Counter(observability.MetricBookingsConflicts, 1, observability.T("kind", string(req.Resource.Kind)))
			l.logger.Info("booking conflict",
				"resource", req.Resource.String(),
				"window", req.Window.String(),
				"interview_id", req.InterviewID,
			)
		}
		return nil, err
	}

	l.metrics.Counter(observability.MetricBookingsCreated, 1, observability.T("kind", string(req.Resource.Kind)))
	l.logger.Info("resource booked",
		"booking_id", booking.ID(),
		"resource", req.Resource.String(),
		"window", req.Window.String(),
		"interview_id", req.InterviewID,
	)
	return booking, nil
}

// CancelBookingsForInterview cancels every active booking of the interview
// and returns how many changed. Nothing to cancel is not an error.
func (l *Ledger) CancelBookingsForInterview(ctx context.Context, interviewID, actor uuid.UUID) (int, error) {
	cancelled, err := sharedApplication.InUnitOfWork(ctx, l.uow, func(txCtx context.Context) (int, error) {
		bookings, err := l.bookings.FindByInterview(txCtx, interviewID)
		if err != nil {
			return 0, fmt.Errorf("failed to load bookings: %w", err)
		}

		n := 0
		for _, b := range bookings {
			if !b.Cancel(actor) {
				continue
			}
			if err := l.bookings.Save(txCtx, b); err != nil {
				return 0, fmt.Errorf("failed to cancel booking %s: %w", b.ID(), err)
			}
			n++
		}
		return n, nil
	})
	if err != nil {
		return 0, err
	}

	if cancelled > 0 {
		l.metrics.Counter(observability.MetricBookingsCancelled, int64(cancelled))
		l.logger.Info("bookings released", "interview_id", interviewID, "count", cancelled)
	}
	return cancelled, nil
}

// CancelBooking cancels a single booking. It is used to compensate bookings
// taken for an interview that was then not created.
func (l *Ledger) CancelBooking(ctx context.Context, bookingID, actor uuid.UUID) error {
	changed := false
	err := sharedApplication.WithUnitOfWork(ctx, l.uow, func(txCtx context.Context) error {
		b, err := l.bookings.FindByID(txCtx, bookingID)
		if err != nil {
			return err
		}
		if changed = b.Cancel(actor); !changed {
			return nil
		}
		return l.bookings.Save(txCtx, b)
	})
	if err == nil && changed {
		l.metrics.Counter(observability.MetricBookingsCancelled, 1)
	}
	return err
}

// ListForInterview returns all bookings of an interview, oldest first.
func (l *Ledger) ListForInterview(ctx context.Context, interviewID uuid.UUID) ([]*domain.Booking, error) {
	return l.bookings.FindByInterview(ctx, interviewID)
}

// ignoreConflict keeps expected conflicts out of the operation error count.
func ignoreConflict(err error) error {
	if errors.Is(err, domain.ErrResourceUnavailable) {
		return nil
	}
	return err
}
