package domain

import (
	"testing"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	orgID := uuid.New()

	t.Run("creates an active room", func(t *testing.T) {
		room, err := NewRoom(orgID, "  R1 ", 4, "Floor 2", []string{"Whiteboard", "whiteboard ", "", "TV"}, true)

		require.NoError(t, err)
		assert.Equal(t, "R1", room.Name())
		assert.Equal(t, 4, room.Capacity())
		assert.Equal(t, orgID, room.OrganizationID())
		assert.Equal(t, []string{"whiteboard", "tv"}, room.Equipment())
		assert.True(t, room.HasVideoConference())
		assert.True(t, room.IsActive())
		assert.True(t, room.HasEquipment("TV"))
		assert.False(t, room.HasEquipment("projector"))
	})

	t.Run("validates input", func(t *testing.T) {
		_, err := NewRoom(orgID, " ", 4, "", nil, false)
		assert.ErrorIs(t, err, ErrEmptyName)
		assert.ErrorIs(t, err, sharedDomain.ErrValidation)

		_, err = NewRoom(orgID, "R1", 0, "", nil, false)
		assert.ErrorIs(t, err, ErrInvalidCapacity)

		_, err = NewRoom(uuid.Nil, "R1", 2, "", nil, false)
		assert.ErrorIs(t, err, ErrMissingOrgID)
	})
}

func TestRoom_SetActive(t *testing.T) {
	room, err := NewRoom(uuid.New(), "R1", 4, "", nil, false)
	require.NoError(t, err)
	updated := room.UpdatedAt()

	room.SetActive(true)
	assert.Equal(t, updated, room.UpdatedAt(), "no-op does not touch")

	room.SetActive(false)
	assert.False(t, room.IsActive())
}

func TestRoom_EquipmentIsCopied(t *testing.T) {
	room, err := NewRoom(uuid.New(), "R1", 4, "", []string{"tv"}, false)
	require.NoError(t, err)

	room.Equipment()[0] = "changed"
	assert.Equal(t, []string{"tv"}, room.Equipment())
}
