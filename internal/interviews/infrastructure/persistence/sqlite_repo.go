package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
)

const columns = `id, organization_id, application_id, title, type, interviewer_ids, scheduled_at, duration_minutes,
	status, location, meeting_url, room_booking_id, asset_booking_ids, reschedule_count, feedback, rating, notes,
	cancel_reason, version, created_at, updated_at`

// SQLiteRepository implements domain.Repository using SQLite. ID lists and
// feedback are stored as JSON text.
type SQLiteRepository struct {
	conn database.Connection
}

// NewSQLiteRepository creates a new SQLite interview repository.
func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn}
}

// Save inserts an interview or updates it while the stored row still has
// the version the interview was loaded with. A row changed in between is
// reported as ErrConcurrentUpdate.
func (r *SQLiteRepository) Save(ctx context.Context, i *domain.Interview) error {
	interviewers, err := json.Marshal(idStrings(i.InterviewerIDs()))
	if err != nil {
		return err
	}
	assets, err := json.Marshal(idStrings(i.AssetBookingIDs()))
	if err != nil {
		return err
	}
	feedback, err := encodeFeedback(i.Feedback())
	if err != nil {
		return err
	}

	var room *string
	if i.RoomBookingID() != nil {
		s := i.RoomBookingID().String()
		room = &s
	}
	var rating sql.NullInt64
	if i.Rating() != nil {
		rating = sql.NullInt64{Int64: int64(*i.Rating()), Valid: true}
	}

	const query = `
		INSERT INTO interviews (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			interviewer_ids = excluded.interviewer_ids,
			scheduled_at = excluded.scheduled_at,
			duration_minutes = excluded.duration_minutes,
			status = excluded.status,
			location = excluded.location,
			meeting_url = excluded.meeting_url,
			room_booking_id = excluded.room_booking_id,
			asset_booking_ids = excluded.asset_booking_ids,
			reschedule_count = excluded.reschedule_count,
			feedback = excluded.feedback,
			rating = excluded.rating,
			notes = excluded.notes,
			cancel_reason = excluded.cancel_reason,
			version = excluded.version,
			updated_at = excluded.updated_at
		WHERE interviews.version = ?
	`
	result, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query,
		i.ID().String(),
		i.OrganizationID().String(),
		i.ApplicationID().String(),
		i.Title(),
		string(i.Type()),
		string(interviewers),
		sqlite.FormatTime(i.ScheduledAt()),
		i.DurationMinutes(),
		string(i.Status()),
		sqlite.NullString(nullable(i.Location())),
		sqlite.NullString(nullable(i.MeetingURL())),
		sqlite.NullString(room),
		string(assets),
		i.RescheduleCount(),
		string(feedback),
		rating,
		sqlite.NullString(nullable(i.Notes())),
		sqlite.NullString(nullable(i.CancelReason())),
		i.Version(),
		sqlite.FormatTime(i.CreatedAt()),
		sqlite.FormatTime(i.UpdatedAt()),
		i.PersistedVersion(),
	)
	if err != nil {
		return err
	}
	return markSaved(result, i)
}

// FindByID loads an interview.
func (r *SQLiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+columns+` FROM interviews WHERE id = ?`, id.String())
	interview, err := scanSQLiteInterview(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrInterviewNotFound
	}
	return interview, err
}

// ListByApplication returns an application's interviews by start time.
func (r *SQLiteRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*domain.Interview, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+columns+` FROM interviews WHERE application_id = ? ORDER BY scheduled_at, id`,
		applicationID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*domain.Interview
	for rows.Next() {
		interview, err := scanSQLiteInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, interview)
	}
	return interviews, rows.Err()
}

func scanSQLiteInterview(row database.Row) (*domain.Interview, error) {
	var (
		id, orgID, appID, title, kind, interviewers string
		scheduledAt, status, assets, feedback       string
		createdAt, updatedAt                        string
		duration, rescheduleCount, version          int
		location, meetingURL, room                  sql.NullString
		notes, cancelReason                         sql.NullString
		rating                                      sql.NullInt64
	)
	err := row.Scan(&id, &orgID, &appID, &title, &kind, &interviewers, &scheduledAt, &duration,
		&status, &location, &meetingURL, &room, &assets, &rescheduleCount, &feedback, &rating, &notes,
		&cancelReason, &version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	ids, err := parseIDs([]string{id, orgID, appID})
	if err != nil {
		return nil, err
	}
	interviewerIDs, err := decodeIDList(interviewers)
	if err != nil {
		return nil, fmt.Errorf("invalid interviewer_ids on interview %s: %w", id, err)
	}
	assetIDs, err := decodeIDList(assets)
	if err != nil {
		return nil, fmt.Errorf("invalid asset_booking_ids on interview %s: %w", id, err)
	}
	entries, err := decodeFeedback([]byte(feedback))
	if err != nil {
		return nil, err
	}

	var roomID *uuid.UUID
	if room.Valid {
		u, err := uuid.Parse(room.String)
		if err != nil {
			return nil, fmt.Errorf("invalid room_booking_id on interview %s: %w", id, err)
		}
		roomID = &u
	}
	var score *int
	if rating.Valid {
		v := int(rating.Int64)
		score = &v
	}

	start, err := sqlite.ParseTime(scheduledAt)
	if err != nil {
		return nil, err
	}
	created, err := sqlite.ParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := sqlite.ParseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateInterview(
		ids[0],
		ids[1],
		ids[2],
		title,
		domain.InterviewType(kind),
		interviewerIDs,
		start,
		duration,
		domain.Status(status),
		location.String,
		meetingURL.String,
		roomID,
		assetIDs,
		rescheduleCount,
		entries,
		score,
		notes.String,
		cancelReason.String,
		version,
		created,
		updated,
	), nil
}

func decodeIDList(raw string) ([]uuid.UUID, error) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return parseIDs(values)
}
