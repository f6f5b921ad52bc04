package persistence

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/booking/domain"
)

// InMemoryRepository keeps bookings in memory. Stored and returned values
// are copies, so callers can mutate what they load without racing other
// readers.
type InMemoryRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]domain.Booking
	order    []uuid.UUID
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{bookings: make(map[uuid.UUID]domain.Booking)}
}

func (r *InMemoryRepository) Save(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID()]; !ok {
		r.order = append(r.order, booking.ID())
	}
	r.bookings[booking.ID()] = *booking
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *InMemoryRepository) FindActiveForResource(_ context.Context, resource domain.ResourceRef, window domain.Interval) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.Conflicts(resource, window)
	}), nil
}

func (r *InMemoryRepository) FindActiveInWindow(_ context.Context, organizationID uuid.UUID, kind domain.ResourceKind, window domain.Interval) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.IsActive() &&
			b.OrganizationID() == organizationID &&
			b.Resource().Kind == kind &&
			b.Window().Overlaps(window)
	}), nil
}

func (r *InMemoryRepository) FindByInterview(_ context.Context, interviewID uuid.UUID) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.InterviewID() == interviewID
	}), nil
}

// LockResource is a no-op; the ledger's keyed lock is the only writer guard.
func (r *InMemoryRepository) LockResource(context.Context, domain.ResourceRef) error {
	return nil
}

// All returns every stored booking in insertion order.
func (r *InMemoryRepository) All() []*domain.Booking {
	return r.filter(func(*domain.Booking) bool { return true })
}

func (r *InMemoryRepository) filter(keep func(*domain.Booking) bool) []*domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Booking, 0)
	for _, id := range r.order {
		b := r.bookings[id]
		if keep(&b) {
			out = append(out, &b)
		}
	}
	return slices.Clip(out)
}
