package domain

import (
	"slices"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/google/uuid"
)

// Room is a bookable meeting room.
type Room struct {
	sharedDomain.BaseAggregateRoot
	organizationID     uuid.UUID
	name               string
	capacity           int
	location           string
	equipment          []string
	hasVideoConference bool
	active             bool
}

// NewRoom creates an active room.
func NewRoom(organizationID uuid.UUID, name string, capacity int, location string, equipment []string, hasVideoConference bool) (*Room, error) {
	if organizationID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		BaseAggregateRoot:  sharedDomain.NewBaseAggregateRoot(),
		organizationID:     organizationID,
		name:               name,
		capacity:           capacity,
		location:           strings.TrimSpace(location),
		equipment:          normalizeEquipment(equipment),
		hasVideoConference: hasVideoConference,
		active:             true,
	}, nil
}

func (r *Room) OrganizationID() uuid.UUID { return r.organizationID }
func (r *Room) Name() string              { return r.name }
func (r *Room) Capacity() int             { return r.capacity }
func (r *Room) Location() string          { return r.location }
func (r *Room) Equipment() []string       { return slices.Clone(r.equipment) }
func (r *Room) HasVideoConference() bool  { return r.hasVideoConference }
func (r *Room) IsActive() bool            { return r.active }

// HasEquipment reports whether the room lists item, ignoring case.
func (r *Room) HasEquipment(item string) bool {
	item = strings.ToLower(strings.TrimSpace(item))
	return slices.Contains(r.equipment, item)
}

// SetActive takes the room in or out of service. Inactive rooms are hidden
// from availability listings and cannot be booked.
func (r *Room) SetActive(active bool) {
	if r.active == active {
		return
	}
	r.active = active
	r.Touch()
}

// normalizeEquipment lowercases, trims, drops blanks and deduplicates.
func normalizeEquipment(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}

// RehydrateRoom recreates a room from persisted state.
func RehydrateRoom(
	id uuid.UUID,
	organizationID uuid.UUID,
	name string,
	capacity int,
	location string,
	equipment []string,
	hasVideoConference bool,
	active bool,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *Room {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Room{
		BaseAggregateRoot:  sharedDomain.RehydrateBaseAggregateRoot(baseEntity, version),
		organizationID:     organizationID,
		name:               name,
		capacity:           capacity,
		location:           location,
		equipment:          equipment,
		hasVideoConference: hasVideoConference,
		active:             active,
	}
}
