package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/infra"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
)

// MemoryStore keeps booking records plus a per-room index of active
// (PENDING/CONFIRMED) stays sorted by check-in. Room counts are small,
// so a sorted slice with binary search beats an interval tree here;
// correctness against racing admissions comes from the caller's
// per-room lock, not from this structure.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*bookingRecord
	byRoom  map[uuid.UUID][]*bookingRecord // active stays, ascending check-in
}

type bookingRecord struct {
	id         uuid.UUID
	roomID     uuid.UUID
	stay       booking.StayRange
	status     booking.Status
	guestName  string
	guestEmail string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]*bookingRecord),
		byRoom:  make(map[uuid.UUID][]*bookingRecord),
	}
}

// FindOverlap returns the first active booking whose stay intersects the
// candidate range, in check-in order, or nil when the range is free.
// The active set never holds two overlapping stays, so check-outs rise
// with check-ins and a single binary search suffices.
func (s *MemoryStore) FindOverlap(_ context.Context, roomID uuid.UUID, stay booking.StayRange) (*uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec := s.findOverlapLocked(roomID, stay); rec != nil {
		id := rec.id
		return &id, nil
	}
	return nil, nil
}

func (s *MemoryStore) findOverlapLocked(roomID uuid.UUID, stay booking.StayRange) *bookingRecord {
	active := s.byRoom[roomID]
	i := sort.Search(len(active), func(i int) bool {
		return active[i].stay.CheckOut().After(stay.CheckIn())
	})
	if i < len(active) && active[i].stay.Overlaps(stay) {
		return active[i]
	}
	return nil
}

// Insert adds a booking record and, while it is active, its stay to the
// room's index. The overlap re-check mirrors the storage-level
// exclusion constraint of the Postgres store: it can only fire for a
// caller that bypassed the admission lock.
func (s *MemoryStore) Insert(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindConflict)
	}
	if b.IsActive() {
		if conflict := s.findOverlapLocked(b.RoomID(), b.Stay()); conflict != nil {
			return infra.WrapRepoErr("stay overlaps an active booking", nil, infra.KindConflict)
		}
	}

	rec := recordFromEntity(b)
	s.records[rec.id] = rec
	if b.IsActive() {
		s.insertActiveLocked(rec)
	}
	return nil
}

func (s *MemoryStore) insertActiveLocked(rec *bookingRecord) {
	active := s.byRoom[rec.roomID]
	i := sort.Search(len(active), func(i int) bool {
		return active[i].stay.CheckIn().After(rec.stay.CheckIn())
	})
	active = append(active, nil)
	copy(active[i+1:], active[i:])
	active[i] = rec
	s.byRoom[rec.roomID] = active
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return rec.toEntity(), nil
}

// UpdateStatus persists a transition already performed on the entity.
// Leaving the active set (CANCELLED) frees the room for that range.
func (s *MemoryStore) UpdateStatus(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	wasActive := rec.status.IsActive()
	rec.status = b.Status()
	rec.updatedAt = b.UpdatedAt()

	if wasActive && !rec.status.IsActive() {
		s.removeActiveLocked(rec)
	}
	return nil
}

func (s *MemoryStore) removeActiveLocked(rec *bookingRecord) {
	active := s.byRoom[rec.roomID]
	for i, r := range active {
		if r.id == rec.id {
			s.byRoom[rec.roomID] = append(active[:i], active[i+1:]...)
			break
		}
	}
	if len(s.byRoom[rec.roomID]) == 0 {
		delete(s.byRoom, rec.roomID)
	}
}

// ActiveStays returns the room's current active ranges in check-in
// order. Used by invariant checks in tests and by the read side.
func (s *MemoryStore) ActiveStays(roomID uuid.UUID) []booking.StayRange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := s.byRoom[roomID]
	stays := make([]booking.StayRange, len(active))
	for i, rec := range active {
		stays[i] = rec.stay
	}
	return stays
}

// --- read store ---

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return rec.toView(), nil
}

func (s *MemoryStore) ListByRoom(_ context.Context, roomID uuid.UUID) ([]*queries.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var views []*queries.BookingView
	for _, rec := range s.records {
		if rec.roomID == roomID {
			views = append(views, rec.toView())
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CheckIn.Before(views[j].CheckIn)
	})
	return views, nil
}

func (s *MemoryStore) ActiveRanges(_ context.Context, roomID uuid.UUID) ([]*queries.RoomStayView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := s.byRoom[roomID]
	views := make([]*queries.RoomStayView, len(active))
	for i, rec := range active {
		views[i] = &queries.RoomStayView{
			BookingID: rec.id,
			CheckIn:   rec.stay.CheckIn(),
			CheckOut:  rec.stay.CheckOut(),
			Status:    rec.status.String(),
		}
	}
	return views, nil
}

func recordFromEntity(b *booking.Booking) *bookingRecord {
	return &bookingRecord{
		id:         b.ID(),
		roomID:     b.RoomID(),
		stay:       b.Stay(),
		status:     b.Status(),
		guestName:  b.Guest().Name(),
		guestEmail: b.Guest().Email(),
		createdAt:  b.CreatedAt(),
		updatedAt:  b.UpdatedAt(),
	}
}

func (r *bookingRecord) toEntity() *booking.Booking {
	return booking.ReconstructBooking(
		r.id,
		r.roomID,
		r.stay,
		r.status,
		booking.NewGuest(r.guestName, r.guestEmail),
		r.createdAt,
		r.updatedAt,
	)
}

func (r *bookingRecord) toView() *queries.BookingView {
	return &queries.BookingView{
		ID:         r.id,
		RoomID:     r.roomID,
		CheckIn:    r.stay.CheckIn(),
		CheckOut:   r.stay.CheckOut(),
		Status:     r.status.String(),
		GuestName:  r.guestName,
		GuestEmail: r.guestEmail,
		CreatedAt:  r.createdAt,
		UpdatedAt:  r.updatedAt,
	}
}
