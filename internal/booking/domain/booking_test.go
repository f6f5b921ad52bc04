package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	room := RoomRef(uuid.New())
	w := window(t, 10, 0, 11, 0)

	b, err := NewBooking(uuid.New(), room, uuid.New(), w, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, StatusActive, b.Status())
	assert.True(t, b.IsActive())
	assert.Nil(t, b.CancelledAt())

	_, err = NewBooking(uuid.New(), ResourceRef{Kind: "desk", ID: uuid.New()}, uuid.New(), w, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = NewBooking(uuid.New(), room, uuid.Nil, w, uuid.New())
	assert.ErrorIs(t, err, ErrMissingInterview)

	_, err = NewBooking(uuid.New(), room, uuid.New(), Interval{Start: at(11, 0), End: at(10, 0)}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestBooking_Cancel(t *testing.T) {
	b, err := NewBooking(uuid.New(), AssetRef(uuid.New()), uuid.New(), window(t, 10, 0, 11, 0), uuid.New())
	require.NoError(t, err)

	actor := uuid.New()
	assert.True(t, b.Cancel(actor))
	assert.Equal(t, StatusCancelled, b.Status())
	require.NotNil(t, b.CancelledBy())
	assert.Equal(t, actor, *b.CancelledBy())
	cancelledAt := *b.CancelledAt()

	assert.False(t, b.Cancel(uuid.New()))
	assert.Equal(t, actor, *b.CancelledBy())
	assert.Equal(t, cancelledAt, *b.CancelledAt())
}

func TestBooking_Conflicts(t *testing.T) {
	room := RoomRef(uuid.New())
	b, err := NewBooking(uuid.New(), room, uuid.New(), window(t, 10, 0, 11, 0), uuid.New())
	require.NoError(t, err)

	assert.True(t, b.Conflicts(room, window(t, 10, 30, 11, 30)))
	assert.False(t, b.Conflicts(room, window(t, 11, 0, 12, 0)))
	assert.False(t, b.Conflicts(RoomRef(uuid.New()), window(t, 10, 30, 11, 30)))
	assert.False(t, b.Conflicts(AssetRef(room.ID), window(t, 10, 30, 11, 30)))

	b.Cancel(uuid.New())
	assert.False(t, b.Conflicts(room, window(t, 10, 30, 11, 30)))
}

func TestParseResourceKind(t *testing.T) {
	kind, err := ParseResourceKind("room")
	require.NoError(t, err)
	assert.Equal(t, KindRoom, kind)

	_, err = ParseResourceKind("Room")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestResourceRef_String(t *testing.T) {
	id := uuid.MustParse("2f1b1f3c-0a58-4d8e-9a55-7d0f1f1f0001")
	assert.Equal(t, "room:2f1b1f3c-0a58-4d8e-9a55-7d0f1f1f0001", RoomRef(id).String())
	assert.Equal(t, "asset:2f1b1f3c-0a58-4d8e-9a55-7d0f1f1f0001", AssetRef(id).String())
}
