package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/migrations"
)

func newSQLiteRepo(t *testing.T) (*SQLiteRepository, *sqlite.Connection) {
	t.Helper()
	ctx := context.Background()
	conn, err := sqlite.OpenInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, migrations.Run(ctx, conn))
	return NewSQLiteRepository(conn), conn
}

func TestSQLiteRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	event := newRoomBooked(uuid.New())
	msg, err := NewMessage(event)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, msg))
	assert.NotZero(t, msg.ID)

	pending, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, event.EventID(), pending[0].EventID)
	assert.Equal(t, "booking.room.booked", pending[0].RoutingKey)
	assert.JSONEq(t, string(msg.Payload), string(pending[0].Payload))
	assert.True(t, msg.CreatedAt.Equal(pending[0].CreatedAt))

	require.NoError(t, repo.MarkFailed(ctx, msg.ID, "broker down", time.Now().Add(time.Hour)))
	pending, err = repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "retry is not due yet")

	count, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.MarkPublished(ctx, msg.ID))
	count, err = repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	repo.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	deleted, err := repo.DeleteOld(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestSQLiteRepository_SaveBatchJoinsTransaction(t *testing.T) {
	ctx := context.Background()
	repo, conn := newSQLiteRepo(t)

	uow := database.NewUnitOfWork(conn)
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)

	first, err := NewMessage(newRoomBooked(uuid.New()))
	require.NoError(t, err)
	second, err := NewMessage(newRoomBooked(uuid.New()))
	require.NoError(t, err)
	require.NoError(t, repo.SaveBatch(txCtx, []*Message{first, second}))
	require.NoError(t, uow.Rollback(txCtx))

	count, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "rolled back with the outer transaction")
}

func TestSQLiteRepository_DeadLetter(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	msg, err := NewMessage(newRoomBooked(uuid.New()))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, msg))
	require.NoError(t, repo.MarkDead(ctx, msg.ID, "poison"))

	pending, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
