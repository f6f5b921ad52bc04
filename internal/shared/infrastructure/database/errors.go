package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrConnectionFailed = errors.New("database connection failed")
)

const pgUniqueViolation = "23505"

// IsNoRows reports whether a single-row query found nothing, for either driver.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether an insert hit a unique constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Classify maps driver errors onto the package sentinels, keeping the
// original in the chain.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsNoRows(err):
		return errors.Join(ErrNotFound, err)
	case IsUniqueViolation(err):
		return errors.Join(ErrDuplicate, err)
	case pgconn.SafeToRetry(err), pgconn.Timeout(err):
		return errors.Join(ErrConnectionFailed, err)
	default:
		return err
	}
}
