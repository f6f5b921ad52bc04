package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
)

// PostgresRepository implements domain.Repository using PostgreSQL.
type PostgresRepository struct {
	conn database.Connection
}

// NewPostgresRepository creates a new PostgreSQL interview repository.
func NewPostgresRepository(conn database.Connection) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

// Save inserts an interview or updates it while the stored row still has
// the version the interview was loaded with. A row changed in between is
// reported as ErrConcurrentUpdate.
func (r *PostgresRepository) Save(ctx context.Context, i *domain.Interview) error {
	feedback, err := encodeFeedback(i.Feedback())
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO interviews (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			interviewer_ids = EXCLUDED.interviewer_ids,
			scheduled_at = EXCLUDED.scheduled_at,
			duration_minutes = EXCLUDED.duration_minutes,
			status = EXCLUDED.status,
			location = EXCLUDED.location,
			meeting_url = EXCLUDED.meeting_url,
			room_booking_id = EXCLUDED.room_booking_id,
			asset_booking_ids = EXCLUDED.asset_booking_ids,
			reschedule_count = EXCLUDED.reschedule_count,
			feedback = EXCLUDED.feedback,
			rating = EXCLUDED.rating,
			notes = EXCLUDED.notes,
			cancel_reason = EXCLUDED.cancel_reason,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
		WHERE interviews.version = $22
	`
	result, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query,
		i.ID(),
		i.OrganizationID(),
		i.ApplicationID(),
		i.Title(),
		string(i.Type()),
		pq.Array(idStrings(i.InterviewerIDs())),
		i.ScheduledAt(),
		i.DurationMinutes(),
		string(i.Status()),
		nullable(i.Location()),
		nullable(i.MeetingURL()),
		i.RoomBookingID(),
		pq.Array(idStrings(i.AssetBookingIDs())),
		i.RescheduleCount(),
		string(feedback),
		i.Rating(),
		nullable(i.Notes()),
		nullable(i.CancelReason()),
		i.Version(),
		i.CreatedAt(),
		i.UpdatedAt(),
		i.PersistedVersion(),
	)
	if err != nil {
		return err
	}
	return markSaved(result, i)
}

// FindByID loads an interview.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+columns+` FROM interviews WHERE id = $1`, id)
	interview, err := scanPostgresInterview(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrInterviewNotFound
	}
	return interview, err
}

// ListByApplication returns an application's interviews by start time.
func (r *PostgresRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*domain.Interview, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+columns+` FROM interviews WHERE application_id = $1 ORDER BY scheduled_at, id`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*domain.Interview
	for rows.Next() {
		interview, err := scanPostgresInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, interview)
	}
	return interviews, rows.Err()
}

func scanPostgresInterview(row database.Row) (*domain.Interview, error) {
	var (
		id, orgID, appID                   uuid.UUID
		title, kind, status                string
		interviewers, assets               []string
		scheduledAt, createdAt, updatedAt  time.Time
		duration, rescheduleCount, version int
		location, meetingURL               *string
		notes, cancelReason                *string
		room                               *uuid.UUID
		feedback                           []byte
		rating                             *int
	)
	err := row.Scan(&id, &orgID, &appID, &title, &kind, pq.Array(&interviewers), &scheduledAt, &duration,
		&status, &location, &meetingURL, &room, pq.Array(&assets), &rescheduleCount, &feedback, &rating, &notes,
		&cancelReason, &version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	interviewerIDs, err := parseIDs(interviewers)
	if err != nil {
		return nil, err
	}
	assetIDs, err := parseIDs(assets)
	if err != nil {
		return nil, err
	}
	entries, err := decodeFeedback(feedback)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateInterview(
		id,
		orgID,
		appID,
		title,
		domain.InterviewType(kind),
		interviewerIDs,
		scheduledAt,
		duration,
		domain.Status(status),
		deref(location),
		deref(meetingURL),
		room,
		assetIDs,
		rescheduleCount,
		entries,
		rating,
		deref(notes),
		deref(cancelReason),
		version,
		createdAt.UTC(),
		updatedAt.UTC(),
	), nil
}
