package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// Booking is a stay on one room. Its dates are immutable: a date change
// is modeled as cancel plus a fresh admission, never an in-place update.
type Booking struct {
	id        uuid.UUID
	roomID    uuid.UUID
	stay      StayRange
	status    Status
	guest     Guest
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a PENDING booking. Callers must route creation
// through the admission path; constructing one does not admit it.
func NewBooking(roomID uuid.UUID, stay StayRange, guest Guest, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		roomID:    roomID,
		stay:      stay,
		status:    StatusPending,
		guest:     guest,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructBooking(
	id, roomID uuid.UUID,
	stay StayRange,
	status Status,
	guest Guest,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		roomID:    roomID,
		stay:      stay,
		status:    status,
		guest:     guest,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Confirm transitions PENDING to CONFIRMED. The stay interval does not
// change, so confirming needs no overlap check.
func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

// Cancel transitions any non-terminal status to CANCELLED. Cancelling a
// booking that is already CANCELLED is an error, not a silent no-op.
func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) RoomID() uuid.UUID    { return b.roomID }
func (b *Booking) Stay() StayRange      { return b.stay }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Guest() Guest         { return b.guest }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
