package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
)

const sqliteAssetColumns = `id, organization_id, name, category, location, status, version, created_at, updated_at`

// SQLiteAssetRepository implements domain.AssetRepository using SQLite.
type SQLiteAssetRepository struct {
	conn database.Connection
}

// NewSQLiteAssetRepository creates a new SQLite asset repository.
func NewSQLiteAssetRepository(conn database.Connection) *SQLiteAssetRepository {
	return &SQLiteAssetRepository{conn: conn}
}

// Save inserts or updates an asset.
func (r *SQLiteAssetRepository) Save(ctx context.Context, asset *domain.Asset) error {
	const query = `
		INSERT INTO assets (` + sqliteAssetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			location = excluded.location,
			status = excluded.status,
			version = excluded.version,
			updated_at = excluded.updated_at
	`
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query,
		asset.ID().String(),
		asset.OrganizationID().String(),
		asset.Name(),
		asset.Category(),
		asset.Location(),
		string(asset.Status()),
		asset.Version(),
		sqlite.FormatTime(asset.CreatedAt()),
		sqlite.FormatTime(asset.UpdatedAt()),
	)
	if database.IsUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

// FindByID loads an asset.
func (r *SQLiteAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+sqliteAssetColumns+` FROM assets WHERE id = ?`, id.String())
	asset, err := scanSQLiteAsset(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrAssetNotFound
	}
	return asset, err
}

// ListByOrganization lists assets in catalog order.
func (r *SQLiteAssetRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, filter domain.AssetFilter) ([]*domain.Asset, error) {
	query := `SELECT ` + sqliteAssetColumns + ` FROM assets WHERE organization_id = ?`
	args := []any{organizationID.String()}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if !filter.IncludeInactive {
		query += ` AND status = ?`
		args = append(args, string(domain.AssetOperational))
	}
	query += ` ORDER BY created_at, name`

	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanSQLiteAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func scanSQLiteAsset(row database.Row) (*domain.Asset, error) {
	var (
		id, orgID, name, category, location, status string
		createdAt, updatedAt                        string
		version                                     int
	)
	if err := row.Scan(&id, &orgID, &name, &category, &location, &status, &version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	assetID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid asset id %q: %w", id, err)
	}
	organizationID, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id %q: %w", orgID, err)
	}
	created, err := sqlite.ParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := sqlite.ParseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateAsset(assetID, organizationID, name, category, location, domain.AssetStatus(status), version, created, updated), nil
}
