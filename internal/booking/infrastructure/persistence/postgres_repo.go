package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/booking/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
)

const postgresColumns = `id, organization_id, resource_kind, resource_id, interview_id, start_at, end_at, status, booked_by, cancelled_by, cancelled_at, created_at, updated_at`

// PostgresRepository implements domain.Repository using PostgreSQL.
type PostgresRepository struct {
	conn database.Connection
}

// NewPostgresRepository creates a new PostgreSQL booking repository.
func NewPostgresRepository(conn database.Connection) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

// Save inserts a booking or records its cancellation.
func (r *PostgresRepository) Save(ctx context.Context, b *domain.Booking) error {
	const query = `
		INSERT INTO bookings (` + postgresColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			cancelled_by = EXCLUDED.cancelled_by,
			cancelled_at = EXCLUDED.cancelled_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query,
		b.ID(),
		b.OrganizationID(),
		string(b.Resource().Kind),
		b.Resource().ID,
		b.InterviewID(),
		b.Window().Start,
		b.Window().End,
		string(b.Status()),
		b.BookedBy(),
		b.CancelledBy(),
		b.CancelledAt(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	return err
}

// FindByID loads a booking.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+postgresColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanPostgresBooking(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

// FindActiveForResource returns active bookings on resource overlapping window.
func (r *PostgresRepository) FindActiveForResource(ctx context.Context, resource domain.ResourceRef, window domain.Interval) ([]*domain.Booking, error) {
	const query = `
		SELECT ` + postgresColumns + `
		FROM bookings
		WHERE resource_kind = $1 AND resource_id = $2 AND status = 'active'
		  AND start_at < $3 AND end_at > $4
		ORDER BY start_at
	`
	return r.query(ctx, query, string(resource.Kind), resource.ID, window.End, window.Start)
}

// FindActiveInWindow returns active bookings of the organization and kind
// overlapping window.
func (r *PostgresRepository) FindActiveInWindow(ctx context.Context, organizationID uuid.UUID, kind domain.ResourceKind, window domain.Interval) ([]*domain.Booking, error) {
	const query = `
		SELECT ` + postgresColumns + `
		FROM bookings
		WHERE organization_id = $1 AND resource_kind = $2 AND status = 'active'
		  AND start_at < $3 AND end_at > $4
		ORDER BY resource_id, start_at
	`
	return r.query(ctx, query, organizationID, string(kind), window.End, window.Start)
}

// FindByInterview returns the interview's bookings, oldest first.
func (r *PostgresRepository) FindByInterview(ctx context.Context, interviewID uuid.UUID) ([]*domain.Booking, error) {
	return r.query(ctx,
		`SELECT `+postgresColumns+` FROM bookings WHERE interview_id = $1 ORDER BY created_at, id`,
		interviewID,
	)
}

// LockResource takes a row lock on the resource for the rest of the
// transaction, so ledgers running in other processes wait their turn.
func (r *PostgresRepository) LockResource(ctx context.Context, resource domain.ResourceRef) error {
	table := "rooms"
	if resource.Kind == domain.KindAsset {
		table = "assets"
	}

	var id uuid.UUID
	err := database.ExecutorFromContext(ctx, r.conn).
		QueryRow(ctx, `SELECT id FROM `+table+` WHERE id = $1 FOR UPDATE`, resource.ID).
		Scan(&id)
	if database.IsNoRows(err) {
		return domain.ErrResourceNotFound
	}
	return err
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanPostgresBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanPostgresBooking(row database.Row) (*domain.Booking, error) {
	var (
		id, orgID, resourceID, interviewID, bookedBy uuid.UUID
		kind, status                                 string
		startAt, endAt, createdAt, updatedAt         time.Time
		cancelledBy                                  *uuid.UUID
		cancelledAt                                  *time.Time
	)
	err := row.Scan(&id, &orgID, &kind, &resourceID, &interviewID, &startAt, &endAt, &status, &bookedBy,
		&cancelledBy, &cancelledAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	resourceKind, err := domain.ParseResourceKind(kind)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateBooking(
		id,
		orgID,
		domain.ResourceRef{Kind: resourceKind, ID: resourceID},
		interviewID,
		domain.Interval{Start: startAt.UTC(), End: endAt.UTC()},
		domain.Status(status),
		bookedBy,
		cancelledBy,
		cancelledAt,
		createdAt,
		updatedAt,
	), nil
}
