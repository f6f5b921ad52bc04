package domain

import (
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/google/uuid"
)

// AssetStatus is the operational state of a piece of equipment.
type AssetStatus string

const (
	AssetOperational AssetStatus = "operational"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
)

// IsValid checks if the status is supported.
func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetOperational, AssetMaintenance, AssetRetired:
		return true
	default:
		return false
	}
}

// Asset is a bookable piece of physical equipment, e.g. a loaner laptop or
// a whiteboard kit.
type Asset struct {
	sharedDomain.BaseAggregateRoot
	organizationID uuid.UUID
	name           string
	category       string
	location       string
	status         AssetStatus
}

// NewAsset creates an operational asset.
func NewAsset(organizationID uuid.UUID, name, category, location string) (*Asset, error) {
	if organizationID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	category = normalizeCategory(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	return &Asset{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		organizationID:    organizationID,
		name:              name,
		category:          category,
		location:          strings.TrimSpace(location),
		status:            AssetOperational,
	}, nil
}

func (a *Asset) OrganizationID() uuid.UUID { return a.organizationID }
func (a *Asset) Name() string              { return a.name }
func (a *Asset) Category() string          { return a.category }
func (a *Asset) Location() string          { return a.location }
func (a *Asset) Status() AssetStatus       { return a.status }

// IsActive reports whether the asset can be booked.
func (a *Asset) IsActive() bool { return a.status == AssetOperational }

// SetStatus moves the asset between operational and maintenance, or retires
// it for good.
func (a *Asset) SetStatus(status AssetStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if a.status == status {
		return nil
	}
	if a.status == AssetRetired {
		return ErrAssetRetired
	}
	a.status = status
	a.Touch()
	return nil
}

// NormalizeCategory is the canonical category form used for filtering.
func NormalizeCategory(category string) string { return normalizeCategory(category) }

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// RehydrateAsset recreates an asset from persisted state.
func RehydrateAsset(
	id uuid.UUID,
	organizationID uuid.UUID,
	name string,
	category string,
	location string,
	status AssetStatus,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *Asset {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Asset{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(baseEntity, version),
		organizationID:    organizationID,
		name:              name,
		category:          category,
		location:          location,
		status:            status,
	}
}
