package commands

import (
	"context"
	"errors"
	"fmt"

	"roomledger/internal/domain/booking"
	"roomledger/internal/infra"
	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/config"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/pkg/roomlock"
	"roomledger/internal/usecase/outcome"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
)

// ConflictError reports which active booking blocked an admission.
// Retrieve it with errors.As; errors.Is(err, errs.ErrOverlapConflict)
// also holds.
type ConflictError struct {
	ConflictingBookingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("stay overlaps booking %s", e.ConflictingBookingID)
}

func NewConflictError(conflictingID uuid.UUID) error {
	return errs.Mark(&ConflictError{ConflictingBookingID: conflictingID}, errs.ErrOverlapConflict)
}

type AdmissionCommands interface {
	TryBook(ctx context.Context, roomID uuid.UUID, checkIn, checkOut string, guest booking.Guest) (*queries.BookingView, error)
}

// admissionImpl turns check-then-insert into one atomic unit. The
// exclusion strategy is an in-process critical section keyed by room:
// overlap check and insert always run under the same room lock, so for
// any one room concurrent admissions serialize while other rooms stay
// fully independent. The storage-level exclusion constraint is a
// backstop for out-of-band writers only.
type admissionImpl struct {
	bookings BookingRepository
	rooms    RoomRepository
	locks    *roomlock.Registry
	clock    clock.Clock
	cfg      config.AdmissionConfig
}

func NewAdmissionCommands(
	bookings BookingRepository,
	rooms RoomRepository,
	locks *roomlock.Registry,
	clk clock.Clock,
	cfg config.Config,
) AdmissionCommands {
	return &admissionImpl{
		bookings: bookings,
		rooms:    rooms,
		locks:    locks,
		clock:    clk,
		cfg:      cfg.Admission,
	}
}

func (a *admissionImpl) TryBook(
	ctx context.Context,
	roomID uuid.UUID,
	checkIn, checkOut string,
	guest booking.Guest,
) (*queries.BookingView, error) {
	// Validation happens before any lock or store access.
	stay, err := booking.ParseStayRange(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRange)
	}

	// A failed attempt leaves zero trace in the ledger, so transient
	// faults are safe to retry from scratch; conflicts and caller
	// errors abort immediately inside Retry. The room lookup sits
	// inside the loop so a transient catalog fault retries too.
	policy := outcome.RetryPolicy{
		MaxAttempts: a.cfg.RetryMax,
		BaseDelay:   a.cfg.RetryBaseDelay,
	}
	return outcome.Retry(ctx, policy, func() (*queries.BookingView, error) {
		if _, err := a.rooms.FindByID(ctx, roomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, errs.ErrRoomNotFound)
			}
			return nil, errs.Mark(err, errs.ErrTransientStoreFailure)
		}
		return a.admit(ctx, roomID, stay, guest)
	})
}

func (a *admissionImpl) admit(
	ctx context.Context,
	roomID uuid.UUID,
	stay booking.StayRange,
	guest booking.Guest,
) (*queries.BookingView, error) {
	release, err := a.locks.Acquire(ctx, roomID, a.cfg.LockTimeout)
	if err != nil {
		if errors.Is(err, roomlock.ErrTimeout) {
			return nil, errs.Mark(err, errs.ErrLockTimeout)
		}
		return nil, errs.Wrap(err, "room lock wait aborted")
	}
	// Released on every exit path below.
	defer release()

	conflictID, err := a.bookings.FindOverlap(ctx, roomID, stay)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTransientStoreFailure)
	}
	if conflictID != nil {
		return nil, NewConflictError(*conflictID)
	}

	b := booking.NewBooking(roomID, stay, guest, a.clock.Now())
	if err := a.bookings.Insert(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// The storage backstop fired: someone wrote past the
			// admission lock. Surface it as a regular conflict.
			if id, lookupErr := a.bookings.FindOverlap(ctx, roomID, stay); lookupErr == nil && id != nil {
				return nil, NewConflictError(*id)
			}
			return nil, errs.Mark(err, errs.ErrOverlapConflict)
		}
		return nil, errs.Mark(err, errs.ErrTransientStoreFailure)
	}

	return bookingViewFromEntity(b), nil
}

func bookingViewFromEntity(b *booking.Booking) *queries.BookingView {
	return &queries.BookingView{
		ID:         b.ID(),
		RoomID:     b.RoomID(),
		CheckIn:    b.Stay().CheckIn(),
		CheckOut:   b.Stay().CheckOut(),
		Status:     b.Status().String(),
		GuestName:  b.Guest().Name(),
		GuestEmail: b.Guest().Email(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}
