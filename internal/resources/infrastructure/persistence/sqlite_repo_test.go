package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/migrations"
)

func openCatalog(t *testing.T) *sqlite.Connection {
	t.Helper()
	ctx := context.Background()
	conn, err := sqlite.OpenInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}

func TestSQLiteRoomRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRoomRepository(openCatalog(t))

	room, err := domain.NewRoom(uuid.New(), "R1", 4, "3rd floor", []string{"Whiteboard", "tv"}, true)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, room))

	found, err := repo.FindByID(ctx, room.ID())
	require.NoError(t, err)
	assert.Equal(t, room.ID(), found.ID())
	assert.Equal(t, room.OrganizationID(), found.OrganizationID())
	assert.Equal(t, "R1", found.Name())
	assert.Equal(t, 4, found.Capacity())
	assert.Equal(t, "3rd floor", found.Location())
	assert.Equal(t, []string{"whiteboard", "tv"}, found.Equipment())
	assert.True(t, found.HasVideoConference())
	assert.True(t, found.IsActive())
	assert.True(t, room.CreatedAt().Equal(found.CreatedAt()))

	found.SetActive(false)
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByID(ctx, room.ID())
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive())
}

func TestSQLiteRoomRepository_FindByID_NotFound(t *testing.T) {
	repo := NewSQLiteRoomRepository(openCatalog(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}

func TestSQLiteRoomRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRoomRepository(openCatalog(t))
	orgID := uuid.New()

	first, err := domain.NewRoom(orgID, "Atlas", 6, "", nil, false)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := domain.NewRoom(orgID, "Atlas", 2, "", nil, false)
	require.NoError(t, err)
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	other, err := domain.NewRoom(uuid.New(), "Atlas", 2, "", nil, false)
	require.NoError(t, err)
	assert.NoError(t, repo.Save(ctx, other))
}

func TestSQLiteRoomRepository_ListByOrganization(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRoomRepository(openCatalog(t))
	orgID := uuid.New()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	rooms := []*domain.Room{
		domain.RehydrateRoom(uuid.New(), orgID, "Birch", 8, "", nil, false, true, 1, base, base),
		domain.RehydrateRoom(uuid.New(), orgID, "Alder", 2, "", nil, false, true, 1, base, base),
		domain.RehydrateRoom(uuid.New(), orgID, "Cedar", 10, "", nil, false, false, 1, base.Add(-time.Hour), base),
		domain.RehydrateRoom(uuid.New(), orgID, "Aspen", 4, "", nil, false, true, 1, base.Add(time.Minute), base),
		domain.RehydrateRoom(uuid.New(), uuid.New(), "Elsewhere", 4, "", nil, false, true, 1, base, base),
	}
	for _, room := range rooms {
		require.NoError(t, repo.Save(ctx, room))
	}

	names := func(list []*domain.Room) []string {
		out := make([]string, 0, len(list))
		for _, r := range list {
			out = append(out, r.Name())
		}
		return out
	}

	active, err := repo.ListByOrganization(ctx, orgID, domain.RoomFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alder", "Birch", "Aspen"}, names(active))

	all, err := repo.ListByOrganization(ctx, orgID, domain.RoomFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cedar", "Alder", "Birch", "Aspen"}, names(all))

	large, err := repo.ListByOrganization(ctx, orgID, domain.RoomFilter{MinCapacity: 4})
	require.NoError(t, err)
	assert.Equal(t, []string{"Birch", "Aspen"}, names(large))
}

func TestSQLiteAssetRepository_SaveFindList(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteAssetRepository(openCatalog(t))
	orgID := uuid.New()

	laptop, err := domain.NewAsset(orgID, "Loaner 1", "Laptop", "IT desk")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, laptop))

	projector, err := domain.NewAsset(orgID, "Projector A", "projector", "")
	require.NoError(t, err)
	require.NoError(t, projector.SetStatus(domain.AssetMaintenance))
	require.NoError(t, repo.Save(ctx, projector))

	found, err := repo.FindByID(ctx, laptop.ID())
	require.NoError(t, err)
	assert.Equal(t, "laptop", found.Category())
	assert.Equal(t, "IT desk", found.Location())
	assert.Equal(t, domain.AssetOperational, found.Status())

	operational, err := repo.ListByOrganization(ctx, orgID, domain.AssetFilter{})
	require.NoError(t, err)
	require.Len(t, operational, 1)
	assert.Equal(t, laptop.ID(), operational[0].ID())

	projectors, err := repo.ListByOrganization(ctx, orgID, domain.AssetFilter{Category: "projector", IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, projectors, 1)
	assert.Equal(t, domain.AssetMaintenance, projectors[0].Status())

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestSQLiteAssetRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteAssetRepository(openCatalog(t))
	orgID := uuid.New()

	first, err := domain.NewAsset(orgID, "Loaner 1", "laptop", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := domain.NewAsset(orgID, "Loaner 1", "laptop", "")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, second), domain.ErrDuplicateName)
}
