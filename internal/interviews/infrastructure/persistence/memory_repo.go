package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
)

// InMemoryRepository keeps interviews in memory. Stored and returned values
// are snapshots, so callers can mutate what they load freely.
type InMemoryRepository struct {
	mu         sync.RWMutex
	interviews map[uuid.UUID]*domain.Interview
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{interviews: make(map[uuid.UUID]*domain.Interview)}
}

// Save stores a snapshot. Like the SQL repositories it refuses to overwrite
// a stored interview whose version moved since interview was loaded.
func (r *InMemoryRepository) Save(_ context.Context, interview *domain.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.interviews[interview.ID()]; ok && stored.Version() != interview.PersistedVersion() {
		return domain.ErrConcurrentUpdate
	}
	interview.MarkPersisted()
	r.interviews[interview.ID()] = snapshot(interview)
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	interview, ok := r.interviews[id]
	if !ok {
		return nil, domain.ErrInterviewNotFound
	}
	return snapshot(interview), nil
}

func (r *InMemoryRepository) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]*domain.Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Interview
	for _, interview := range r.interviews {
		if interview.ApplicationID() == applicationID {
			out = append(out, snapshot(interview))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt().Equal(out[j].ScheduledAt()) {
			return out[i].ScheduledAt().Before(out[j].ScheduledAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

// snapshot copies an interview without its pending events.
func snapshot(i *domain.Interview) *domain.Interview {
	var rating *int
	if i.Rating() != nil {
		r := *i.Rating()
		rating = &r
	}
	var room *uuid.UUID
	if i.RoomBookingID() != nil {
		id := *i.RoomBookingID()
		room = &id
	}
	return domain.RehydrateInterview(
		i.ID(),
		i.OrganizationID(),
		i.ApplicationID(),
		i.Title(),
		i.Type(),
		i.InterviewerIDs(),
		i.ScheduledAt(),
		i.DurationMinutes(),
		i.Status(),
		i.Location(),
		i.MeetingURL(),
		room,
		i.AssetBookingIDs(),
		i.RescheduleCount(),
		i.Feedback(),
		rating,
		i.Notes(),
		i.CancelReason(),
		i.Version(),
		i.CreatedAt(),
		i.UpdatedAt(),
	)
}
