package queries

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/resources/domain"
)

// RoomDTO is the read model of a room.
type RoomDTO struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Capacity           int       `json:"capacity"`
	Location           string    `json:"location,omitempty"`
	Equipment          []string  `json:"equipment"`
	HasVideoConference bool      `json:"has_video_conference"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}

// AssetDTO is the read model of an asset.
type AssetDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToRoomDTO maps a room to its read model.
func ToRoomDTO(room *domain.Room) RoomDTO {
	return RoomDTO{
		ID:                 room.ID(),
		Name:               room.Name(),
		Capacity:           room.Capacity(),
		Location:           room.Location(),
		Equipment:          room.Equipment(),
		HasVideoConference: room.HasVideoConference(),
		Active:             room.IsActive(),
		CreatedAt:          room.CreatedAt(),
	}
}

// ToAssetDTO maps an asset to its read model.
func ToAssetDTO(asset *domain.Asset) AssetDTO {
	return AssetDTO{
		ID:        asset.ID(),
		Name:      asset.Name(),
		Category:  asset.Category(),
		Location:  asset.Location(),
		Status:    string(asset.Status()),
		CreatedAt: asset.CreatedAt(),
	}
}
