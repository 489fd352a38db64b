//go:build unit || e2e

package builder

import (
	"time"

	dombooking "roomledger/internal/domain/booking"
	reqdto "roomledger/internal/handler/dto/request"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	RoomID     uuid.UUID
	CheckIn    string
	CheckOut   string
	GuestName  string
	GuestEmail string
	Now        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		RoomID:     uuid.New(),
		CheckIn:    "2026-09-10",
		CheckOut:   "2026-09-14",
		GuestName:  "Ada Lovelace",
		GuestEmail: "ada@example.com",
		Now:        time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut string) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithRoom(roomID uuid.UUID) *BookingBuilder {
	b.RoomID = roomID
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	stay, err := dombooking.ParseStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	guest := dombooking.NewGuest(b.GuestName, b.GuestEmail)
	return dombooking.NewBooking(b.RoomID, stay, guest, b.Now), nil
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomID:     b.RoomID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	checkIn, _ := time.Parse("2006-01-02", b.CheckIn)
	checkOut, _ := time.Parse("2006-01-02", b.CheckOut)
	return &queries.BookingView{
		ID:         uuid.New(),
		RoomID:     b.RoomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     dombooking.StatusPending.String(),
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		CreatedAt:  b.Now,
		UpdatedAt:  b.Now,
	}
}
