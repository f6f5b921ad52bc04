package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/booking/application/queries"
)

// AvailabilityHandler answers which rooms and assets are free.
type AvailabilityHandler struct {
	rooms        *queries.ListAvailableRoomsHandler
	assets       *queries.ListAvailableAssetsHandler
	organization uuid.UUID
	logger       *slog.Logger
}

// NewAvailabilityHandler creates a new availability handler. organization is
// used when a request names none.
func NewAvailabilityHandler(rooms *queries.ListAvailableRoomsHandler, assets *queries.ListAvailableAssetsHandler, organization uuid.UUID, logger *slog.Logger) *AvailabilityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvailabilityHandler{
		rooms:        rooms,
		assets:       assets,
		organization: organization,
		logger:       logger,
	}
}

// Rooms handles GET /api/v1/rooms/availability
func (h *AvailabilityHandler) Rooms(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}
	minCapacity := 0
	if v := c.Query("min_capacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, "min_capacity must be a non-negative integer")
			return
		}
		minCapacity = n
	}

	rows, err := h.rooms.Handle(c.Request.Context(), queries.ListAvailableRoomsQuery{
		OrganizationID: h.organizationOf(c),
		Start:          start,
		End:            end,
		MinCapacity:    minCapacity,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rows})
}

// Assets handles GET /api/v1/assets/availability
func (h *AvailabilityHandler) Assets(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	rows, err := h.assets.Handle(c.Request.Context(), queries.ListAvailableAssetsQuery{
		OrganizationID: h.organizationOf(c),
		Start:          start,
		End:            end,
		Category:       c.Query("category"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": rows})
}

func (h *AvailabilityHandler) organizationOf(c *gin.Context) uuid.UUID {
	if id, err := uuid.Parse(c.Query("organization_id")); err == nil {
		return id
	}
	return headerID(c, headerOrganizationID, h.organization)
}

func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		badRequest(c, "start must be an RFC 3339 timestamp")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		badRequest(c, "end must be an RFC 3339 timestamp")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
