// Package sqlite provides the embedded database backend used for local runs
// and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/security"
)

func init() {
	database.Register(database.DriverSQLite, NewConnection)
}

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const pragmas = "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Connection wraps sql.DB to implement database.Connection.
type Connection struct {
	db *sql.DB
	database.SQLExecutor
}

// NewConnection opens (and creates if needed) the database file at
// cfg.SQLitePath. The pool is limited to one connection: SQLite has a
// single writer, and an in-memory database only exists on the connection
// that created it.
func NewConnection(ctx context.Context, cfg database.Config) (database.Connection, error) {
	path := cfg.SQLitePath
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	file, query, hasQuery := strings.Cut(path, "?")
	if file != MemoryPath {
		cleaned, err := security.ValidateFilePath(file)
		if err != nil {
			return nil, fmt.Errorf("invalid sqlite path: %w", err)
		}
		if err := database.EnsureDirectory(cleaned); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		file = cleaned
	}

	path = file + "?"
	if hasQuery {
		path += query + "&"
	}

	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &Connection{db: db, SQLExecutor: database.SQLExecutor{Target: db}}, nil
}

// OpenInMemory is a shortcut for tests.
func OpenInMemory(ctx context.Context) (*Connection, error) {
	conn, err := NewConnection(ctx, database.Config{Driver: database.DriverSQLite, SQLitePath: MemoryPath})
	if err != nil {
		return nil, err
	}
	return conn.(*Connection), nil
}

// DB exposes the underlying handle for migrations.
func (c *Connection) DB() *sql.DB { return c.db }

func (c *Connection) Driver() database.Driver        { return database.DriverSQLite }
func (c *Connection) Close() error                   { return c.db.Close() }
func (c *Connection) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

// BeginTx starts a new transaction.
func (c *Connection) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Transaction{tx: tx, SQLExecutor: database.SQLExecutor{Target: tx}}, nil
}

// Transaction wraps sql.Tx to implement database.Transaction.
type Transaction struct {
	tx *sql.Tx
	database.SQLExecutor
}

func (t *Transaction) Commit(context.Context) error   { return t.tx.Commit() }
func (t *Transaction) Rollback(context.Context) error { return t.tx.Rollback() }
