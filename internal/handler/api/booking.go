package api

import (
	"context"
	"errors"
	"net/http"

	"roomledger/internal/domain/booking"
	reqdto "roomledger/internal/handler/dto/request"
	resdto "roomledger/internal/handler/dto/response"
	"roomledger/internal/handler/httperr"
	"roomledger/internal/handler/middleware"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/outcome"
	"roomledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	admission commands.AdmissionCommands
	lifecycle commands.LifecycleCommands
	queries   queries.BookingQueries
}

func NewBookingHandler(
	admission commands.AdmissionCommands,
	lifecycle commands.LifecycleCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		admission: admission,
		lifecycle: lifecycle,
		queries:   bookingQueries,
	}
}

// @Summary Create booking
// @Description Admit a new booking for a room and date range
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	// A token identity wins over body fields.
	guest, ok := middleware.GuestFromContext(c)
	if !ok {
		guest = booking.NewGuest(req.GuestName, req.GuestEmail)
	}

	view, err := h.admission.TryBook(c.Request.Context(), req.RoomID, req.CheckIn, req.CheckOut, guest)
	if err != nil {
		h.abortClassified(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.applyTransition(c, h.lifecycle.Confirm)
}

// @Summary Cancel booking
// @Description Cancel a booking and free its date range
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.applyTransition(c, h.lifecycle.Cancel)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortClassified(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) applyTransition(
	c *gin.Context,
	transition func(ctx context.Context, id uuid.UUID) (*queries.BookingView, error),
) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID", nil)
		return
	}

	view, err := transition(c.Request.Context(), id)
	if err != nil {
		h.abortClassified(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// abortClassified maps a usecase error to a transport response through
// the admission classifier. Overlap conflicts additionally expose the
// blocking booking so clients can offer alternatives.
func (h *BookingHandler) abortClassified(c *gin.Context, err error) {
	classification := outcome.Classify(err)

	var detail any
	var conflict *commands.ConflictError
	if errors.As(err, &conflict) {
		detail = gin.H{"conflicting_booking_id": conflict.ConflictingBookingID}
	}

	httperr.AbortWithError(c, classification.Status, err, classification.Message, detail)
}
