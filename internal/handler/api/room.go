package api

import (
	"net/http"

	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/handler/httperr"
	"roomledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	queries queries.BookingQueries
}

func NewRoomHandler(bookingQueries queries.BookingQueries) *RoomHandler {
	return &RoomHandler{queries: bookingQueries}
}

// @Summary List room bookings
// @Description All bookings for a room, newest stay first is not guaranteed; ordered by check-in
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {array} resdto.BookingResponse
// @Router /rooms/{id}/bookings [get]
func (h *RoomHandler) ListBookings(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	views, err := h.queries.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Room availability
// @Description Active (PENDING/CONFIRMED) stays occupying the room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {array} resdto.RoomStayResponse
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	views, err := h.queries.ActiveRanges(c.Request.Context(), roomID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomStayViews(views))
}
