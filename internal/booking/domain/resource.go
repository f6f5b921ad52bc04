package domain

import (
	"context"

	"github.com/google/uuid"
)

// ResourceKind distinguishes the two bookable resource types.
type ResourceKind string

const (
	KindRoom  ResourceKind = "room"
	KindAsset ResourceKind = "asset"
)

func (k ResourceKind) IsValid() bool {
	return k == KindRoom || k == KindAsset
}

// ParseResourceKind validates a kind read from input or storage.
func ParseResourceKind(value string) (ResourceKind, error) {
	kind := ResourceKind(value)
	if !kind.IsValid() {
		return "", ErrInvalidKind
	}
	return kind, nil
}

// ResourceRef identifies one bookable resource.
type ResourceRef struct {
	Kind ResourceKind
	ID   uuid.UUID
}

// RoomRef is shorthand for a room reference.
func RoomRef(id uuid.UUID) ResourceRef { return ResourceRef{Kind: KindRoom, ID: id} }

// AssetRef is shorthand for an asset reference.
func AssetRef(id uuid.UUID) ResourceRef { return ResourceRef{Kind: KindAsset, ID: id} }

// String is the lock key of the resource, e.g. "room:0b6c...".
func (r ResourceRef) String() string {
	return string(r.Kind) + ":" + r.ID.String()
}

// Resource is the ledger's read-only view of a catalog entry. Room fields
// are zero for assets and the other way round.
type Resource struct {
	Ref            ResourceRef
	OrganizationID uuid.UUID
	Name           string
	Location       string
	Active         bool

	Capacity           int
	Equipment          []string
	HasVideoConference bool

	Category string
	Status   string
}

// ResourceFilter narrows a catalog listing. MinCapacity applies to rooms,
// Category to assets.
type ResourceFilter struct {
	MinCapacity int
	Category    string
}

// Catalog is the ledger's port onto the resource catalog. ListResources
// returns only active resources, in catalog order. FindResource returns
// ErrResourceNotFound for unknown ids and includes inactive resources.
type Catalog interface {
	ListResources(ctx context.Context, organizationID uuid.UUID, kind ResourceKind, filter ResourceFilter) ([]Resource, error)
	FindResource(ctx context.Context, ref ResourceRef) (Resource, error)
}
