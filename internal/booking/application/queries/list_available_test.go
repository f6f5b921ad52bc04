package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/recruita/internal/booking/application/services"
	"github.com/felixgeelhaar/recruita/internal/booking/domain"
	"github.com/felixgeelhaar/recruita/internal/booking/infrastructure/persistence"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/lock"
)

type noopUnitOfWork struct{}

func (noopUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (noopUnitOfWork) Commit(context.Context) error                       { return nil }
func (noopUnitOfWork) Rollback(context.Context) error                     { return nil }

type staticCatalog []domain.Resource

func (c staticCatalog) ListResources(_ context.Context, orgID uuid.UUID, kind domain.ResourceKind, filter domain.ResourceFilter) ([]domain.Resource, error) {
	var out []domain.Resource
	for _, r := range c {
		if r.OrganizationID == orgID && r.Ref.Kind == kind && r.Capacity >= filter.MinCapacity {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c staticCatalog) FindResource(_ context.Context, ref domain.ResourceRef) (domain.Resource, error) {
	for _, r := range c {
		if r.Ref == ref {
			return r, nil
		}
	}
	return domain.Resource{}, domain.ErrResourceNotFound
}

func TestListAvailableRoomsHandler(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	r1 := domain.Resource{Ref: domain.RoomRef(uuid.New()), OrganizationID: orgID, Name: "R1", Capacity: 4, Active: true}
	ledger := services.NewLedger(persistence.NewInMemoryRepository(), staticCatalog{r1}, lock.NewKeyedMutex(), noopUnitOfWork{}, nil, nil)

	start := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	window, err := domain.NewInterval(start, end)
	require.NoError(t, err)
	interviewID := uuid.New()
	_, err = ledger.Book(ctx, services.BookRequest{
		OrganizationID: orgID,
		Resource:       r1.Ref,
		InterviewID:    interviewID,
		Window:         window,
		BookedBy:       uuid.New(),
	})
	require.NoError(t, err)

	rooms, err := NewListAvailableRoomsHandler(ledger).Handle(ctx, ListAvailableRoomsQuery{
		OrganizationID: orgID,
		Start:          start,
		End:            end,
		MinCapacity:    2,
	})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, r1.Ref.ID, rooms[0].ID)
	assert.False(t, rooms[0].Available)
	assert.NotNil(t, rooms[0].Equipment)

	_, err = NewListAvailableRoomsHandler(ledger).Handle(ctx, ListAvailableRoomsQuery{OrganizationID: orgID, Start: end, End: start})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	bookings, err := NewListBookingsForInterviewHandler(ledger).Handle(ctx, ListBookingsForInterviewQuery{InterviewID: interviewID})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "room", bookings[0].ResourceKind)
	assert.Equal(t, "active", bookings[0].Status)
	assert.Equal(t, start, bookings[0].StartAt)
}

func TestListAvailableAssetsHandler(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	laptop := domain.Resource{Ref: domain.AssetRef(uuid.New()), OrganizationID: orgID, Name: "Loaner", Category: "laptop", Active: true}
	ledger := services.NewLedger(persistence.NewInMemoryRepository(), staticCatalog{laptop}, lock.NewKeyedMutex(), noopUnitOfWork{}, nil, nil)

	start := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	assets, err := NewListAvailableAssetsHandler(ledger).Handle(ctx, ListAvailableAssetsQuery{
		OrganizationID: orgID,
		Start:          start,
		End:            start.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "laptop", assets[0].Category)
	assert.True(t, assets[0].Available)
}
