package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
)

// ListRoomsQuery lists an organization's rooms in catalog order.
type ListRoomsQuery struct {
	OrganizationID  uuid.UUID
	MinCapacity     int
	IncludeInactive bool
}

// ListRoomsHandler handles the ListRoomsQuery.
type ListRoomsHandler struct {
	repo domain.RoomRepository
}

// NewListRoomsHandler creates a new ListRoomsHandler.
func NewListRoomsHandler(repo domain.RoomRepository) *ListRoomsHandler {
	return &ListRoomsHandler{repo: repo}
}

// Handle executes the ListRoomsQuery.
func (h *ListRoomsHandler) Handle(ctx context.Context, query ListRoomsQuery) ([]RoomDTO, error) {
	rooms, err := h.repo.ListByOrganization(ctx, query.OrganizationID, domain.RoomFilter{
		MinCapacity:     query.MinCapacity,
		IncludeInactive: query.IncludeInactive,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]RoomDTO, 0, len(rooms))
	for _, room := range rooms {
		dtos = append(dtos, ToRoomDTO(room))
	}
	return dtos, nil
}

// ListAssetsQuery lists an organization's assets in catalog order.
type ListAssetsQuery struct {
	OrganizationID  uuid.UUID
	Category        string
	IncludeInactive bool
}

// ListAssetsHandler handles the ListAssetsQuery.
type ListAssetsHandler struct {
	repo domain.AssetRepository
}

// NewListAssetsHandler creates a new ListAssetsHandler.
func NewListAssetsHandler(repo domain.AssetRepository) *ListAssetsHandler {
	return &ListAssetsHandler{repo: repo}
}

// Handle executes the ListAssetsQuery.
func (h *ListAssetsHandler) Handle(ctx context.Context, query ListAssetsQuery) ([]AssetDTO, error) {
	assets, err := h.repo.ListByOrganization(ctx, query.OrganizationID, domain.AssetFilter{
		Category:        domain.NormalizeCategory(query.Category),
		IncludeInactive: query.IncludeInactive,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]AssetDTO, 0, len(assets))
	for _, asset := range assets {
		dtos = append(dtos, ToAssetDTO(asset))
	}
	return dtos, nil
}
