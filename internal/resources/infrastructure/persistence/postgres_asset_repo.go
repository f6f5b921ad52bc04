package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
)

const postgresAssetColumns = `id, organization_id, name, category, location, status, version, created_at, updated_at`

// PostgresAssetRepository implements domain.AssetRepository using PostgreSQL.
type PostgresAssetRepository struct {
	conn database.Connection
}

// NewPostgresAssetRepository creates a new PostgreSQL asset repository.
func NewPostgresAssetRepository(conn database.Connection) *PostgresAssetRepository {
	return &PostgresAssetRepository{conn: conn}
}

// Save inserts or updates an asset.
func (r *PostgresAssetRepository) Save(ctx context.Context, asset *domain.Asset) error {
	const query = `
		INSERT INTO assets (` + postgresAssetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query,
		asset.ID(),
		asset.OrganizationID(),
		asset.Name(),
		asset.Category(),
		asset.Location(),
		string(asset.Status()),
		asset.Version(),
		asset.CreatedAt(),
		asset.UpdatedAt(),
	)
	if database.IsUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

// FindByID loads an asset.
func (r *PostgresAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+postgresAssetColumns+` FROM assets WHERE id = $1`, id)
	asset, err := scanPostgresAsset(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrAssetNotFound
	}
	return asset, err
}

// ListByOrganization lists assets in catalog order.
func (r *PostgresAssetRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, filter domain.AssetFilter) ([]*domain.Asset, error) {
	query := `
		SELECT ` + postgresAssetColumns + `
		FROM assets
		WHERE organization_id = $1
		  AND ($2 = '' OR category = $2)
		  AND (status = 'operational' OR $3)
		ORDER BY created_at, name
	`
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, organizationID, filter.Category, filter.IncludeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanPostgresAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func scanPostgresAsset(row database.Row) (*domain.Asset, error) {
	var (
		id, orgID                        uuid.UUID
		name, category, location, status string
		version                          int
		createdAt, updatedAt             time.Time
	)
	if err := row.Scan(&id, &orgID, &name, &category, &location, &status, &version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.RehydrateAsset(id, orgID, name, category, location, domain.AssetStatus(status), version, createdAt, updatedAt), nil
}
