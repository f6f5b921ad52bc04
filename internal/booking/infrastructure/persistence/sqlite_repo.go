package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/booking/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
)

const sqliteColumns = `id, organization_id, resource_kind, resource_id, interview_id, start_at, end_at, status, booked_by, cancelled_by, cancelled_at, created_at, updated_at`

// SQLiteRepository implements domain.Repository using SQLite.
type SQLiteRepository struct {
	conn database.Connection
}

// NewSQLiteRepository creates a new SQLite booking repository.
func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn}
}

// Save inserts a booking or records its cancellation.
func (r *SQLiteRepository) Save(ctx context.Context, b *domain.Booking) error {
	var cancelledBy *string
	if b.CancelledBy() != nil {
		s := b.CancelledBy().String()
		cancelledBy = &s
	}

	const query = `
		INSERT INTO bookings (` + sqliteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			cancelled_by = excluded.cancelled_by,
			cancelled_at = excluded.cancelled_at,
			updated_at = excluded.updated_at
	`
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query,
		b.ID().String(),
		b.OrganizationID().String(),
		string(b.Resource().Kind),
		b.Resource().ID.String(),
		b.InterviewID().String(),
		sqlite.FormatTime(b.Window().Start),
		sqlite.FormatTime(b.Window().End),
		string(b.Status()),
		b.BookedBy().String(),
		sqlite.NullString(cancelledBy),
		sqlite.NullTime(b.CancelledAt()),
		sqlite.FormatTime(b.CreatedAt()),
		sqlite.FormatTime(b.UpdatedAt()),
	)
	return err
}

// FindByID loads a booking.
func (r *SQLiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+sqliteColumns+` FROM bookings WHERE id = ?`, id.String())
	b, err := scanSQLiteBooking(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

// FindActiveForResource returns active bookings on resource overlapping window.
func (r *SQLiteRepository) FindActiveForResource(ctx context.Context, resource domain.ResourceRef, window domain.Interval) ([]*domain.Booking, error) {
	const query = `
		SELECT ` + sqliteColumns + `
		FROM bookings
		WHERE resource_kind = ? AND resource_id = ? AND status = 'active'
		  AND start_at < ? AND end_at > ?
		ORDER BY start_at
	`
	return r.query(ctx, query,
		string(resource.Kind),
		resource.ID.String(),
		sqlite.FormatTime(window.End),
		sqlite.FormatTime(window.Start),
	)
}

// FindActiveInWindow returns active bookings of the organization and kind
// overlapping window.
func (r *SQLiteRepository) FindActiveInWindow(ctx context.Context, organizationID uuid.UUID, kind domain.ResourceKind, window domain.Interval) ([]*domain.Booking, error) {
	const query = `
		SELECT ` + sqliteColumns + `
		FROM bookings
		WHERE organization_id = ? AND resource_kind = ? AND status = 'active'
		  AND start_at < ? AND end_at > ?
		ORDER BY resource_id, start_at
	`
	return r.query(ctx, query,
		organizationID.String(),
		string(kind),
		sqlite.FormatTime(window.End),
		sqlite.FormatTime(window.Start),
	)
}

// FindByInterview returns the interview's bookings, oldest first.
func (r *SQLiteRepository) FindByInterview(ctx context.Context, interviewID uuid.UUID) ([]*domain.Booking, error) {
	return r.query(ctx,
		`SELECT `+sqliteColumns+` FROM bookings WHERE interview_id = ? ORDER BY created_at, id`,
		interviewID.String(),
	)
}

// LockResource is a no-op: the SQLite pool holds a single connection, so
// transactions never interleave.
func (r *SQLiteRepository) LockResource(context.Context, domain.ResourceRef) error {
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanSQLiteBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanSQLiteBooking(row database.Row) (*domain.Booking, error) {
	var (
		id, orgID, kind, resourceID, interviewID string
		startAt, endAt, status, bookedBy         string
		createdAt, updatedAt                     string
		cancelledBy, cancelledAt                 sql.NullString
	)
	err := row.Scan(&id, &orgID, &kind, &resourceID, &interviewID, &startAt, &endAt, &status, &bookedBy,
		&cancelledBy, &cancelledAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	ids, err := parseUUIDs(id, orgID, resourceID, interviewID, bookedBy)
	if err != nil {
		return nil, err
	}
	resourceKind, err := domain.ParseResourceKind(kind)
	if err != nil {
		return nil, err
	}

	parsed := make([]time.Time, 0, 4)
	for _, raw := range []string{startAt, endAt, createdAt, updatedAt} {
		t, err := sqlite.ParseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp on booking %s: %w", id, err)
		}
		parsed = append(parsed, t)
	}

	var canceller *uuid.UUID
	if cancelledBy.Valid {
		u, err := uuid.Parse(cancelledBy.String)
		if err != nil {
			return nil, fmt.Errorf("invalid cancelled_by on booking %s: %w", id, err)
		}
		canceller = &u
	}
	cancelTime, err := sqlite.ParseNullTime(cancelledAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateBooking(
		ids[0],
		ids[1],
		domain.ResourceRef{Kind: resourceKind, ID: ids[2]},
		ids[3],
		domain.Interval{Start: parsed[0], End: parsed[1]},
		domain.Status(status),
		ids[4],
		canceller,
		cancelTime,
		parsed[2],
		parsed[3],
	), nil
}

func parseUUIDs(values ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", v, err)
		}
		out[i] = id
	}
	return out, nil
}
