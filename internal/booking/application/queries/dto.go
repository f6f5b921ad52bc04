package queries

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/booking/application/services"
	"github.com/felixgeelhaar/recruita/internal/booking/domain"
)

// RoomAvailabilityDTO is one row of a room availability listing.
type RoomAvailabilityDTO struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Capacity           int       `json:"capacity"`
	Location           string    `json:"location,omitempty"`
	Equipment          []string  `json:"equipment"`
	HasVideoConference bool      `json:"has_video_conference"`
	Available          bool      `json:"available"`
}

// AssetAvailabilityDTO is one row of an asset availability listing.
type AssetAvailabilityDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location,omitempty"`
	Available bool      `json:"available"`
}

// BookingDTO is the read model of a booking.
type BookingDTO struct {
	ID           uuid.UUID  `json:"id"`
	ResourceKind string     `json:"resource_kind"`
	ResourceID   uuid.UUID  `json:"resource_id"`
	InterviewID  uuid.UUID  `json:"interview_id"`
	StartAt      time.Time  `json:"start_at"`
	EndAt        time.Time  `json:"end_at"`
	Status       string     `json:"status"`
	BookedBy     uuid.UUID  `json:"booked_by"`
	CancelledBy  *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

func toRoomAvailability(a services.Availability) RoomAvailabilityDTO {
	equipment := a.Resource.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return RoomAvailabilityDTO{
		ID:                 a.Resource.Ref.ID,
		Name:               a.Resource.Name,
		Capacity:           a.Resource.Capacity,
		Location:           a.Resource.Location,
		Equipment:          equipment,
		HasVideoConference: a.Resource.HasVideoConference,
		Available:          a.Available,
	}
}

func toAssetAvailability(a services.Availability) AssetAvailabilityDTO {
	return AssetAvailabilityDTO{
		ID:        a.Resource.Ref.ID,
		Name:      a.Resource.Name,
		Category:  a.Resource.Category,
		Location:  a.Resource.Location,
		Available: a.Available,
	}
}

// ToBookingDTO maps a booking to its read model.
func ToBookingDTO(b *domain.Booking) BookingDTO {
	return BookingDTO{
		ID:           b.ID(),
		ResourceKind: string(b.Resource().Kind),
		ResourceID:   b.Resource().ID,
		InterviewID:  b.InterviewID(),
		StartAt:      b.Window().Start,
		EndAt:        b.Window().End,
		Status:       string(b.Status()),
		BookedBy:     b.BookedBy(),
		CancelledBy:  b.CancelledBy(),
		CancelledAt:  b.CancelledAt(),
	}
}
