package roomlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrTimeout = errors.New("timed out waiting for room lock")

// Registry hands out mutual exclusion scoped to a single room. The
// granularity matters: admission for one room must serialize, while
// bookings for different rooms never contend. Entries are created on
// first use and dropped once no holder or waiter references them, so
// the map does not grow with the room catalog.
type Registry struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*roomLock
}

type roomLock struct {
	ch   chan struct{} // holds one token while the room is locked
	refs int
}

func NewRegistry() *Registry {
	return &Registry{
		locks: make(map[uuid.UUID]*roomLock),
	}
}

// Acquire blocks until the room's exclusive section is held, the context
// is done, or the timeout elapses. On success the returned release
// function must be called on every exit path; it is safe to call once
// via defer even after an explicit release.
func (r *Registry) Acquire(ctx context.Context, roomID uuid.UUID, timeout time.Duration) (func(), error) {
	l := r.checkout(roomID)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case l.ch <- struct{}{}:
		var once sync.Once
		release := func() {
			once.Do(func() {
				<-l.ch
				r.checkin(roomID, l)
			})
		}
		return release, nil
	case <-timer.C:
		r.checkin(roomID, l)
		return nil, ErrTimeout
	case <-ctx.Done():
		r.checkin(roomID, l)
		return nil, ctx.Err()
	}
}

func (r *Registry) checkout(roomID uuid.UUID) *roomLock {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[roomID]
	if !ok {
		l = &roomLock{ch: make(chan struct{}, 1)}
		r.locks[roomID] = l
	}
	l.refs++
	return l
}

func (r *Registry) checkin(roomID uuid.UUID, l *roomLock) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(r.locks, roomID)
	}
}

// Len reports the number of rooms with a live lock entry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
