package commands

import (
	"context"

	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/room"

	"github.com/google/uuid"
)

// BookingRepository is the room ledger: per-room active intervals plus
// the booking records behind them. FindOverlap and Insert are only
// meaningful inside the per-room exclusive section held by the
// admission path; UpdateStatus to CANCELLED drops the stay from the
// active set.
type BookingRepository interface {
	FindOverlap(ctx context.Context, roomID uuid.UUID, stay booking.StayRange) (*uuid.UUID, error)
	Insert(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}
