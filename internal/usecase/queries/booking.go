package queries

import (
	"context"
	"time"

	"roomledger/internal/infra"
	"roomledger/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingView struct {
	ID         uuid.UUID
	RoomID     uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Status     string
	GuestName  string
	GuestEmail string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoomStayView is the availability projection: just enough for a
// calendar to grey out occupied dates.
type RoomStayView struct {
	BookingID uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
	Status    string
}

type BookingReadStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*BookingView, error)
	ActiveRanges(ctx context.Context, roomID uuid.UUID) ([]*RoomStayView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*BookingView, error)
	ActiveRanges(ctx context.Context, roomID uuid.UUID) ([]*RoomStayView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.GetByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to get booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*BookingView, error) {
	views, err := q.store.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings by room")
	}
	return views, nil
}

func (q *bookingQueriesImpl) ActiveRanges(ctx context.Context, roomID uuid.UUID) ([]*RoomStayView, error) {
	views, err := q.store.ActiveRanges(ctx, roomID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list active stays")
	}
	return views, nil
}
