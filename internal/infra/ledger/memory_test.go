//go:build unit

package ledger_test

import (
	"context"
	"testing"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/infra"
	"roomledger/internal/infra/ledger"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newBooking(t *testing.T, roomID uuid.UUID, checkIn, checkOut string) *booking.Booking {
	t.Helper()
	stay, err := booking.ParseStayRange(checkIn, checkOut)
	require.NoError(t, err)
	return booking.NewBooking(roomID, stay, booking.NewGuest("Ada Lovelace", "ada@example.com"), testNow)
}

func TestMemoryStoreFindOverlap(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewMemoryStore()
	roomID := uuid.New()

	booked := newBooking(t, roomID, "2026-09-10", "2026-09-14")
	require.NoError(t, store.Insert(ctx, booked))

	t.Run("reports the blocking booking", func(t *testing.T) {
		stay, _ := booking.ParseStayRange("2026-09-12", "2026-09-16")
		id, err := store.FindOverlap(ctx, roomID, stay)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, booked.ID(), *id)
	})

	t.Run("back-to-back stay is free", func(t *testing.T) {
		stay, _ := booking.ParseStayRange("2026-09-14", "2026-09-18")
		id, err := store.FindOverlap(ctx, roomID, stay)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("other rooms are unaffected", func(t *testing.T) {
		stay, _ := booking.ParseStayRange("2026-09-10", "2026-09-14")
		id, err := store.FindOverlap(ctx, uuid.New(), stay)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("earliest blocker wins with multiple overlaps", func(t *testing.T) {
		later := newBooking(t, roomID, "2026-09-20", "2026-09-24")
		require.NoError(t, store.Insert(ctx, later))

		stay, _ := booking.ParseStayRange("2026-09-13", "2026-09-21")
		id, err := store.FindOverlap(ctx, roomID, stay)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, booked.ID(), *id)
	})
}

func TestMemoryStoreInsert(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an overlapping active stay", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		roomID := uuid.New()

		require.NoError(t, store.Insert(ctx, newBooking(t, roomID, "2026-09-10", "2026-09-14")))

		err := store.Insert(ctx, newBooking(t, roomID, "2026-09-12", "2026-09-16"))
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("rejects a duplicate booking ID", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		b := newBooking(t, uuid.New(), "2026-09-10", "2026-09-14")

		require.NoError(t, store.Insert(ctx, b))
		err := store.Insert(ctx, b)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		roomID := uuid.New()

		b := newBooking(t, roomID, "2026-09-10", "2026-09-14")
		require.NoError(t, store.Insert(ctx, b))
		require.NoError(t, b.Cancel(testNow))
		require.NoError(t, store.UpdateStatus(ctx, b))

		require.NoError(t, store.Insert(ctx, newBooking(t, roomID, "2026-09-10", "2026-09-14")))
	})

	t.Run("keeps active stays sorted by check-in", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		roomID := uuid.New()

		for _, dates := range [][2]string{
			{"2026-09-20", "2026-09-24"},
			{"2026-09-01", "2026-09-05"},
			{"2026-09-10", "2026-09-14"},
		} {
			require.NoError(t, store.Insert(ctx, newBooking(t, roomID, dates[0], dates[1])))
		}

		var got []string
		for _, stay := range store.ActiveStays(roomID) {
			got = append(got, stay.String())
		}
		want := []string{
			"[2026-09-01,2026-09-05)",
			"[2026-09-10,2026-09-14)",
			"[2026-09-20,2026-09-24)",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("active stays mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm keeps the stay active", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		roomID := uuid.New()

		b := newBooking(t, roomID, "2026-09-10", "2026-09-14")
		require.NoError(t, store.Insert(ctx, b))
		require.NoError(t, b.Confirm(testNow))
		require.NoError(t, store.UpdateStatus(ctx, b))

		assert.Len(t, store.ActiveStays(roomID), 1)

		found, err := store.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, found.Status())
	})

	t.Run("cancel frees the range", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		roomID := uuid.New()

		b := newBooking(t, roomID, "2026-09-10", "2026-09-14")
		require.NoError(t, store.Insert(ctx, b))
		require.NoError(t, b.Cancel(testNow))
		require.NoError(t, store.UpdateStatus(ctx, b))

		assert.Empty(t, store.ActiveStays(roomID))
	})

	t.Run("unknown booking", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		b := newBooking(t, uuid.New(), "2026-09-10", "2026-09-14")
		require.NoError(t, b.Cancel(testNow))

		err := store.UpdateStatus(ctx, b)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestMemoryStoreReadSide(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewMemoryStore()
	roomID := uuid.New()

	active := newBooking(t, roomID, "2026-09-10", "2026-09-14")
	require.NoError(t, store.Insert(ctx, active))

	cancelled := newBooking(t, roomID, "2026-09-20", "2026-09-24")
	require.NoError(t, store.Insert(ctx, cancelled))
	require.NoError(t, cancelled.Cancel(testNow))
	require.NoError(t, store.UpdateStatus(ctx, cancelled))

	t.Run("GetByID", func(t *testing.T) {
		view, err := store.GetByID(ctx, active.ID())
		require.NoError(t, err)
		assert.Equal(t, active.ID(), view.ID)
		assert.Equal(t, "PENDING", view.Status)
		assert.Equal(t, "Ada Lovelace", view.GuestName)

		_, err = store.GetByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("ListByRoom includes cancelled bookings", func(t *testing.T) {
		views, err := store.ListByRoom(ctx, roomID)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, active.ID(), views[0].ID)
		assert.Equal(t, cancelled.ID(), views[1].ID)
	})

	t.Run("ActiveRanges excludes cancelled bookings", func(t *testing.T) {
		views, err := store.ActiveRanges(ctx, roomID)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, active.ID(), views[0].BookingID)
	})
}
