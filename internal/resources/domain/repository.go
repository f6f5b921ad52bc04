package domain

import (
	"context"

	"github.com/google/uuid"
)

// RoomFilter narrows a room listing. Zero values match everything.
type RoomFilter struct {
	MinCapacity     int
	IncludeInactive bool
}

// AssetFilter narrows an asset listing. Zero values match everything.
type AssetFilter struct {
	Category        string
	IncludeInactive bool
}

// RoomRepository persists rooms. Listings are in catalog order: creation
// time, then name.
type RoomRepository interface {
	Save(ctx context.Context, room *Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, filter RoomFilter) ([]*Room, error)
}

// AssetRepository persists assets. Listings are in catalog order.
type AssetRepository interface {
	Save(ctx context.Context, asset *Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, filter AssetFilter) ([]*Asset, error)
}
