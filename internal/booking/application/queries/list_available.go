package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/booking/application/services"
	"github.com/felixgeelhaar/recruita/internal/booking/domain"
)

// ListAvailableRoomsQuery asks which rooms are free over [Start, End).
type ListAvailableRoomsQuery struct {
	OrganizationID uuid.UUID
	Start          time.Time
	End            time.Time
	MinCapacity    int
}

// ListAvailableRoomsHandler handles the ListAvailableRoomsQuery.
type ListAvailableRoomsHandler struct {
	ledger *services.Ledger
}

// NewListAvailableRoomsHandler creates a new ListAvailableRoomsHandler.
func NewListAvailableRoomsHandler(ledger *services.Ledger) *ListAvailableRoomsHandler {
	return &ListAvailableRoomsHandler{ledger: ledger}
}

// Handle executes the ListAvailableRoomsQuery.
func (h *ListAvailableRoomsHandler) Handle(ctx context.Context, query ListAvailableRoomsQuery) ([]RoomAvailabilityDTO, error) {
	window, err := domain.NewInterval(query.Start, query.End)
	if err != nil {
		return nil, err
	}

	rows, err := h.ledger.ListAvailability(ctx, query.OrganizationID, domain.KindRoom, window, domain.ResourceFilter{
		MinCapacity: query.MinCapacity,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]RoomAvailabilityDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toRoomAvailability(row))
	}
	return dtos, nil
}

// ListAvailableAssetsQuery asks which assets are free over [Start, End).
type ListAvailableAssetsQuery struct {
	OrganizationID uuid.UUID
	Start          time.Time
	End            time.Time
	Category       string
}

// ListAvailableAssetsHandler handles the ListAvailableAssetsQuery.
type ListAvailableAssetsHandler struct {
	ledger *services.Ledger
}

// NewListAvailableAssetsHandler creates a new ListAvailableAssetsHandler.
func NewListAvailableAssetsHandler(ledger *services.Ledger) *ListAvailableAssetsHandler {
	return &ListAvailableAssetsHandler{ledger: ledger}
}

// Handle executes the ListAvailableAssetsQuery.
func (h *ListAvailableAssetsHandler) Handle(ctx context.Context, query ListAvailableAssetsQuery) ([]AssetAvailabilityDTO, error) {
	window, err := domain.NewInterval(query.Start, query.End)
	if err != nil {
		return nil, err
	}

	rows, err := h.ledger.ListAvailability(ctx, query.OrganizationID, domain.KindAsset, window, domain.ResourceFilter{
		Category: query.Category,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]AssetAvailabilityDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toAssetAvailability(row))
	}
	return dtos, nil
}

// ListBookingsForInterviewQuery lists an interview's bookings, cancelled
// ones included.
type ListBookingsForInterviewQuery struct {
	InterviewID uuid.UUID
}

// ListBookingsForInterviewHandler handles the ListBookingsForInterviewQuery.
type ListBookingsForInterviewHandler struct {
	ledger *services.Ledger
}

// NewListBookingsForInterviewHandler creates a new ListBookingsForInterviewHandler.
func NewListBookingsForInterviewHandler(ledger *services.Ledger) *ListBookingsForInterviewHandler {
	return &ListBookingsForInterviewHandler{ledger: ledger}
}

// Handle executes the ListBookingsForInterviewQuery.
func (h *ListBookingsForInterviewHandler) Handle(ctx context.Context, query ListBookingsForInterviewQuery) ([]BookingDTO, error) {
	bookings, err := h.ledger.ListForInterview(ctx, query.InterviewID)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		dtos = append(dtos, ToBookingDTO(b))
	}
	return dtos, nil
}
