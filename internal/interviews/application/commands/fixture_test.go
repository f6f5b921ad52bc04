package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	bookingServices "github.com/felixgeelhaar/recruita/internal/booking/application/services"
	bookingDomain "github.com/felixgeelhaar/recruita/internal/booking/domain"
	bookingPersistence "github.com/felixgeelhaar/recruita/internal/booking/infrastructure/persistence"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/services"
	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	"github.com/felixgeelhaar/recruita/internal/interviews/infrastructure/persistence"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

type noopUnitOfWork struct{}

func (noopUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (noopUnitOfWork) Commit(context.Context) error                       { return nil }
func (noopUnitOfWork) Rollback(context.Context) error                     { return nil }

// scriptedRepo wraps the in-memory store. afterFind runs once, right after
// the first lookup; failSave fails the n-th Save (counting from 1).
type scriptedRepo struct {
	*persistence.InMemoryRepository
	afterFind func()
	failSave  map[int]error
	saves     int
}

func (r *scriptedRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	interview, err := r.InMemoryRepository.FindByID(ctx, id)
	if hook := r.afterFind; hook != nil {
		r.afterFind = nil
		hook()
	}
	return interview, err
}

func (r *scriptedRepo) Save(ctx context.Context, interview *domain.Interview) error {
	r.saves++
	if err, ok := r.failSave[r.saves]; ok {
		return err
	}
	return r.InMemoryRepository.Save(ctx, interview)
}

type staticCatalog []bookingDomain.Resource

func (c staticCatalog) ListResources(_ context.Context, organizationID uuid.UUID, kind bookingDomain.ResourceKind, filter bookingDomain.ResourceFilter) ([]bookingDomain.Resource, error) {
	var out []bookingDomain.Resource
	for _, r := range c {
		if r.OrganizationID == organizationID && r.Ref.Kind == kind && r.Active && r.Capacity >= filter.MinCapacity {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c staticCatalog) FindResource(_ context.Context, ref bookingDomain.ResourceRef) (bookingDomain.Resource, error) {
	for _, r := range c {
		if r.Ref == ref {
			return r, nil
		}
	}
	return bookingDomain.Resource{}, bookingDomain.ErrResourceNotFound
}

type fixture struct {
	interviews  *persistence.InMemoryRepository
	bookings    *bookingPersistence.InMemoryRepository
	ledger      *bookingServices.Ledger
	coordinator *services.Coordinator
	outbox      *outbox.InMemoryRepository
	metrics     *observability.InMemoryMetrics

	orgID   uuid.UUID
	room    uuid.UUID
	laptop  uuid.UUID
	headset uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		interviews: persistence.NewInMemoryRepository(),
		bookings:   bookingPersistence.NewInMemoryRepository(),
		outbox:     outbox.NewInMemoryRepository(),
		metrics:    observability.NewInMemoryMetrics(),
		orgID:      uuid.New(),
		room:       uuid.New(),
		laptop:     uuid.New(),
		headset:    uuid.New(),
	}
	catalog := staticCatalog{
		{Ref: bookingDomain.RoomRef(f.room), OrganizationID: f.orgID, Name: "R1", Capacity: 4, Active: true},
		{Ref: bookingDomain.AssetRef(f.laptop), OrganizationID: f.orgID, Name: "Loaner", Category: "laptop", Active: true},
		{Ref: bookingDomain.AssetRef(f.headset), OrganizationID: f.orgID, Name: "Headset", Category: "audio", Active: true},
	}
	f.ledger = bookingServices.NewLedger(f.bookings, catalog, lock.NewKeyedMutex(), noopUnitOfWork{}, f.metrics, nil)
	f.coordinator = services.NewCoordinator(f.ledger, nil)
	return f
}

func (f *fixture) scheduleHandler(policy BookingFailurePolicy) *ScheduleInterviewHandler {
	return NewScheduleInterviewHandler(f.interviews, f.coordinator, f.outbox, noopUnitOfWork{}, policy, f.metrics, nil)
}

func (f *fixture) rescheduleHandler() *RescheduleInterviewHandler {
	return NewRescheduleInterviewHandler(f.interviews, f.coordinator, f.outbox, noopUnitOfWork{}, f.metrics, nil)
}

func (f *fixture) cancelHandler() *CancelInterviewHandler {
	return NewCancelInterviewHandler(f.interviews, f.coordinator, f.outbox, noopUnitOfWork{}, f.metrics, nil)
}

func (f *fixture) completeHandler() *CompleteInterviewHandler {
	return NewCompleteInterviewHandler(f.interviews, f.outbox, noopUnitOfWork{}, f.metrics, nil)
}

func (f *fixture) noShowHandler() *RecordNoShowHandler {
	return NewRecordNoShowHandler(f.interviews, f.outbox, noopUnitOfWork{}, f.metrics, nil)
}

func (f *fixture) feedbackHandler(policy domain.CompletionPolicy) *AddFeedbackHandler {
	return NewAddFeedbackHandler(f.interviews, f.outbox, noopUnitOfWork{}, policy, f.metrics, nil)
}

func (f *fixture) command(start string, interviewers ...uuid.UUID) ScheduleInterviewCommand {
	if len(interviewers) == 0 {
		interviewers = []uuid.UUID{uuid.New()}
	}
	return ScheduleInterviewCommand{
		OrganizationID:  f.orgID,
		ApplicationID:   uuid.New(),
		Title:           "Tech Interview",
		Type:            string(domain.TypeInPerson),
		InterviewerIDs:  interviewers,
		ScheduledAt:     start,
		DurationMinutes: 60,
		Location:        "HQ",
		ActorID:         uuid.New(),
	}
}

// schedule books an in-person interview with the room and both assets.
func (f *fixture) schedule(t *testing.T, start string, interviewers ...uuid.UUID) *domain.Interview {
	t.Helper()
	cmd := f.command(start, interviewers...)
	cmd.RoomID = &f.room
	cmd.AssetIDs = []uuid.UUID{f.laptop, f.headset}
	result, err := f.scheduleHandler(KeepOnBookingFailure).Handle(context.Background(), cmd)
	require.NoError(t, err)
	require.Equal(t, OutcomeFullyBooked, result.Outcome)
	return result.Interview
}

func (f *fixture) free(t *testing.T, ref bookingDomain.ResourceRef, start, end time.Time) bool {
	t.Helper()
	window, err := bookingDomain.NewInterval(start, end)
	require.NoError(t, err)
	ok, err := f.ledger.CheckAvailability(context.Background(), ref, window)
	require.NoError(t, err)
	return ok
}

func (f *fixture) activeBookings(interviewID uuid.UUID) []*bookingDomain.Booking {
	var out []*bookingDomain.Booking
	for _, b := range f.bookings.All() {
		if b.InterviewID() == interviewID && b.IsActive() {
			out = append(out, b)
		}
	}
	return out
}

func (f *fixture) routingKeys() []string {
	var keys []string
	for _, msg := range f.outbox.Messages() {
		keys = append(keys, msg.RoutingKey)
	}
	return keys
}

func hour(h, m int) time.Time {
	return time.Date(2024, 6, 10, h, m, 0, 0, time.UTC)
}
