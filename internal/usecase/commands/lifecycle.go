package commands

import (
	"context"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/infra"
	"roomledger/internal/pkg/clock"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type LifecycleCommands interface {
	Confirm(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
}

// lifecycleImpl owns status transitions on existing bookings. They run
// outside the admission lock: confirm does not change the interval and
// cancel only shrinks the active set, so neither can create an overlap.
type lifecycleImpl struct {
	bookings BookingRepository
	clock    clock.Clock
}

func NewLifecycleCommands(bookings BookingRepository, clk clock.Clock) LifecycleCommands {
	return &lifecycleImpl{
		bookings: bookings,
		clock:    clk,
	}
}

func (l *lifecycleImpl) Confirm(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	return l.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Confirm(now)
	})
}

// Cancel frees the booking's range: the store drops the stay from the
// room's active set when the CANCELLED status lands.
func (l *lifecycleImpl) Cancel(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	return l.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(now)
	})
}

func (l *lifecycleImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	mutate func(b *booking.Booking, now time.Time) error,
) (*queries.BookingView, error) {
	b, err := l.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrTransientStoreFailure)
	}

	if err := mutate(b, l.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTransition)
	}

	if err := l.bookings.UpdateStatus(ctx, b); err != nil {
		return nil, errs.Mark(err, errs.ErrTransientStoreFailure)
	}

	return bookingViewFromEntity(b), nil
}
