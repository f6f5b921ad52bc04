// Package migrations applies the embedded schema for the configured driver.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TEXT NOT NULL
)`

// Run applies every pending .up.sql file in name order, each in its own
// transaction, and records it in schema_migrations.
func Run(ctx context.Context, conn database.Connection) error {
	dir, insert, err := dialect(conn.Driver())
	if err != nil {
		return err
	}

	if _, err := conn.Exec(ctx, createVersionTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return err
	}

	pending, err := Pending(conn.Driver(), applied)
	if err != nil {
		return err
	}

	for _, name := range pending {
		body, err := fs.ReadFile(files, dir+"/"+name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if err := apply(ctx, conn, name, string(body), insert); err != nil {
			return err
		}
	}
	return nil
}

// Pending lists the migrations for driver that are not in applied.
func Pending(driver database.Driver, applied map[string]bool) ([]string, error) {
	dir, _, err := dialect(driver)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") && !applied[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func dialect(driver database.Driver) (dir, insert string, err error) {
	switch driver {
	case database.DriverSQLite:
		return "sqlite", "INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)", nil
	case database.DriverPostgres:
		return "postgres", "INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

func appliedVersions(ctx context.Context, conn database.Connection) (map[string]bool, error) {
	rows, err := conn.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, conn database.Connection, name, body, insert string) error {
	tx, err := conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, body); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, insert, name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}
	return tx.Commit(ctx)
}
