package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
)

func TestNewConnection_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "recruita.db")

	conn, err := database.NewConnection(ctx, database.Config{Driver: database.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer conn.Close()

	assert.NoError(t, conn.Ping(ctx))
	assert.Equal(t, database.DriverSQLite, conn.Driver())
	assert.FileExists(t, path)
}

func TestNewConnection_RequiresPath(t *testing.T) {
	_, err := NewConnection(context.Background(), database.Config{Driver: database.DriverSQLite})
	assert.Error(t, err)
}

func TestNewConnection_RejectsUnsafePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db;rm")

	_, err := NewConnection(context.Background(), database.Config{Driver: database.DriverSQLite, SQLitePath: path})
	assert.ErrorContains(t, err, "invalid sqlite path")
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	conn, err := OpenInMemory(ctx)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, `CREATE TABLE rooms (id TEXT PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)

	res, err := conn.Exec(ctx, `INSERT INTO rooms (id, name) VALUES (?, ?), (?, ?)`, "r1", "Atlas", "r2", "Borealis")
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rows, err := conn.Query(ctx, `SELECT name FROM rooms ORDER BY name`)
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	assert.Equal(t, []string{"Atlas", "Borealis"}, names)
}

func TestConnection_UnitOfWork(t *testing.T) {
	ctx := context.Background()
	conn, err := OpenInMemory(ctx)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, `CREATE TABLE bookings (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	uow := database.NewUnitOfWork(conn)

	t.Run("rollback discards writes", func(t *testing.T) {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		_, err = database.ExecutorFromContext(txCtx, conn).Exec(txCtx, `INSERT INTO bookings (id) VALUES ('b1')`)
		require.NoError(t, err)
		require.NoError(t, uow.Rollback(txCtx))

		var count int
		require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("nested unit joins the outer transaction", func(t *testing.T) {
		outer, err := uow.Begin(ctx)
		require.NoError(t, err)

		inner, err := uow.Begin(outer)
		require.NoError(t, err)
		_, err = database.ExecutorFromContext(inner, conn).Exec(inner, `INSERT INTO bookings (id) VALUES ('b2')`)
		require.NoError(t, err)
		require.NoError(t, uow.Commit(inner))

		info, ok := database.TxInfoFromContext(inner)
		require.True(t, ok)
		assert.False(t, info.Owned)

		require.NoError(t, uow.Commit(outer))

		var count int
		require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("commit without transaction fails", func(t *testing.T) {
		assert.Error(t, uow.Commit(ctx))
	})
}
