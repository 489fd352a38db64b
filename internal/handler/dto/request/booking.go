package request

import (
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required"`
	CheckOut   string    `json:"check_out" binding:"required"`
	GuestName  string    `json:"guest_name" binding:"omitempty,max=200"`
	GuestEmail string    `json:"guest_email" binding:"omitempty,email"`
}
