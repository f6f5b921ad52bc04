// Package catalog adapts the resource catalog repositories to the booking
// ledger's read-only view.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	bookingDomain "github.com/felixgeelhaar/recruita/internal/booking/domain"
	resourcesDomain "github.com/felixgeelhaar/recruita/internal/resources/domain"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

// Adapter implements bookingDomain.Catalog over the room and asset
// repositories.
type Adapter struct {
	rooms  resourcesDomain.RoomRepository
	assets resourcesDomain.AssetRepository
}

// NewAdapter creates a new catalog adapter.
func NewAdapter(rooms resourcesDomain.RoomRepository, assets resourcesDomain.AssetRepository) *Adapter {
	return &Adapter{rooms: rooms, assets: assets}
}

// ListResources returns the active resources of kind in catalog order.
func (a *Adapter) ListResources(ctx context.Context, organizationID uuid.UUID, kind bookingDomain.ResourceKind, filter bookingDomain.ResourceFilter) ([]bookingDomain.Resource, error) {
	switch kind {
	case bookingDomain.KindRoom:
		rooms, err := a.rooms.ListByOrganization(ctx, organizationID, resourcesDomain.RoomFilter{MinCapacity: filter.MinCapacity})
		if err != nil {
			return nil, err
		}
		out := make([]bookingDomain.Resource, 0, len(rooms))
		for _, room := range rooms {
			out = append(out, FromRoom(room))
		}
		return out, nil

	case bookingDomain.KindAsset:
		assets, err := a.assets.ListByOrganization(ctx, organizationID, resourcesDomain.AssetFilter{
			Category: resourcesDomain.NormalizeCategory(filter.Category),
		})
		if err != nil {
			return nil, err
		}
		out := make([]bookingDomain.Resource, 0, len(assets))
		for _, asset := range assets {
			out = append(out, FromAsset(asset))
		}
		return out, nil

	default:
		return nil, bookingDomain.ErrInvalidKind
	}
}

// FindResource loads one resource, active or not.
func (a *Adapter) FindResource(ctx context.Context, ref bookingDomain.ResourceRef) (bookingDomain.Resource, error) {
	switch ref.Kind {
	case bookingDomain.KindRoom:
		room, err := a.rooms.FindByID(ctx, ref.ID)
		if err != nil {
			return bookingDomain.Resource{}, notFound(err)
		}
		return FromRoom(room), nil

	case bookingDomain.KindAsset:
		asset, err := a.assets.FindByID(ctx, ref.ID)
		if err != nil {
			return bookingDomain.Resource{}, notFound(err)
		}
		return FromAsset(asset), nil

	default:
		return bookingDomain.Resource{}, bookingDomain.ErrInvalidKind
	}
}

// FromRoom maps a catalog room to the ledger view.
func FromRoom(room *resourcesDomain.Room) bookingDomain.Resource {
	return bookingDomain.Resource{
		Ref:                bookingDomain.RoomRef(room.ID()),
		OrganizationID:     room.OrganizationID(),
		Name:               room.Name(),
		Location:           room.Location(),
		Active:             room.IsActive(),
		Capacity:           room.Capacity(),
		Equipment:          room.Equipment(),
		HasVideoConference: room.HasVideoConference(),
	}
}

// FromAsset maps a catalog asset to the ledger view.
func FromAsset(asset *resourcesDomain.Asset) bookingDomain.Resource {
	return bookingDomain.Resource{
		Ref:            bookingDomain.AssetRef(asset.ID()),
		OrganizationID: asset.OrganizationID(),
		Name:           asset.Name(),
		Location:       asset.Location(),
		Active:         asset.IsActive(),
		Category:       asset.Category(),
		Status:         string(asset.Status()),
	}
}

func notFound(err error) error {
	if errors.Is(err, sharedDomain.ErrNotFound) {
		return fmt.Errorf("%w: %w", bookingDomain.ErrResourceNotFound, err)
	}
	return err
}
