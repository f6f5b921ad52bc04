package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
)

const postgresRoomColumns = `id, organization_id, name, capacity, location, equipment, has_video_conference, active, version, created_at, updated_at`

// PostgresRoomRepository implements domain.RoomRepository using PostgreSQL.
type PostgresRoomRepository struct {
	conn database.Connection
}

// NewPostgresRoomRepository creates a new PostgreSQL room repository.
func NewPostgresRoomRepository(conn database.Connection) *PostgresRoomRepository {
	return &PostgresRoomRepository{conn: conn}
}

// Save inserts or updates a room.
func (r *PostgresRoomRepository) Save(ctx context.Context, room *domain.Room) error {
	const query = `
		INSERT INTO rooms (` + postgresRoomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			capacity = EXCLUDED.capacity,
			location = EXCLUDED.location,
			equipment = EXCLUDED.equipment,
			has_video_conference = EXCLUDED.has_video_conference,
			active = EXCLUDED.active,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query,
		room.ID(),
		room.OrganizationID(),
		room.Name(),
		room.Capacity(),
		room.Location(),
		pq.Array(room.Equipment()),
		room.HasVideoConference(),
		room.IsActive(),
		room.Version(),
		room.CreatedAt(),
		room.UpdatedAt(),
	)
	if database.IsUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

// FindByID loads a room.
func (r *PostgresRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+postgresRoomColumns+` FROM rooms WHERE id = $1`, id)
	room, err := scanPostgresRoom(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrRoomNotFound
	}
	return room, err
}

// ListByOrganization lists rooms in catalog order.
func (r *PostgresRoomRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, filter domain.RoomFilter) ([]*domain.Room, error) {
	query := `
		SELECT ` + postgresRoomColumns + `
		FROM rooms
		WHERE organization_id = $1
		  AND capacity >= $2
		  AND (active OR $3)
		ORDER BY created_at, name
	`
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, organizationID, filter.MinCapacity, filter.IncludeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		room, err := scanPostgresRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func scanPostgresRoom(row database.Row) (*domain.Room, error) {
	var (
		id, orgID            uuid.UUID
		name, location       string
		equipment            []string
		capacity, version    int
		hasVC, active        bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &orgID, &name, &capacity, &location, pq.Array(&equipment), &hasVC, &active, &version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateRoom(id, orgID, name, capacity, location, equipment, hasVC, active, version, createdAt, updatedAt), nil
}
