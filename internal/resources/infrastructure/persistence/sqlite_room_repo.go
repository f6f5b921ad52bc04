package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
)

const sqliteRoomColumns = `id, organization_id, name, capacity, location, equipment, has_video_conference, active, version, created_at, updated_at`

// SQLiteRoomRepository implements domain.RoomRepository using SQLite.
type SQLiteRoomRepository struct {
	conn database.Connection
}

// NewSQLiteRoomRepository creates a new SQLite room repository.
func NewSQLiteRoomRepository(conn database.Connection) *SQLiteRoomRepository {
	return &SQLiteRoomRepository{conn: conn}
}

// Save inserts or updates a room.
func (r *SQLiteRoomRepository) Save(ctx context.Context, room *domain.Room) error {
	equipment, err := json.Marshal(room.Equipment())
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO rooms (` + sqliteRoomColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			capacity = excluded.capacity,
			location = excluded.location,
			equipment = excluded.equipment,
			has_video_conference = excluded.has_video_conference,
			active = excluded.active,
			version = excluded.version,
			updated_at = excluded.updated_at
	`
	_, err = database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query,
		room.ID().String(),
		room.OrganizationID().String(),
		room.Name(),
		room.Capacity(),
		room.Location(),
		string(equipment),
		room.HasVideoConference(),
		room.IsActive(),
		room.Version(),
		sqlite.FormatTime(room.CreatedAt()),
		sqlite.FormatTime(room.UpdatedAt()),
	)
	if database.IsUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

// FindByID loads a room.
func (r *SQLiteRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+sqliteRoomColumns+` FROM rooms WHERE id = ?`, id.String())
	room, err := scanSQLiteRoom(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrRoomNotFound
	}
	return room, err
}

// ListByOrganization lists rooms in catalog order.
func (r *SQLiteRoomRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, filter domain.RoomFilter) ([]*domain.Room, error) {
	query := `SELECT ` + sqliteRoomColumns + ` FROM rooms WHERE organization_id = ? AND capacity >= ?`
	if !filter.IncludeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY created_at, name`

	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, organizationID.String(), filter.MinCapacity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		room, err := scanSQLiteRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func scanSQLiteRoom(row database.Row) (*domain.Room, error) {
	var (
		id, orgID, name, location, equipment string
		createdAt, updatedAt                 string
		capacity, version                    int
		hasVC, active                        bool
	)
	if err := row.Scan(&id, &orgID, &name, &capacity, &location, &equipment, &hasVC, &active, &version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	roomID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid room id %q: %w", id, err)
	}
	organizationID, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id %q: %w", orgID, err)
	}
	var items []string
	if err := json.Unmarshal([]byte(equipment), &items); err != nil {
		return nil, fmt.Errorf("invalid equipment for room %s: %w", id, err)
	}
	created, err := sqlite.ParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := sqlite.ParseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateRoom(roomID, organizationID, name, capacity, location, items, hasVC, active, version, created, updated), nil
}
