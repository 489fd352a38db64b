//go:build unit

package roomlock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"roomledger/internal/pkg/roomlock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	r := roomlock.NewRegistry()
	roomID := uuid.New()

	release, err := r.Acquire(context.Background(), roomID, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	release()
	assert.Equal(t, 0, r.Len(), "registry must not retain released rooms")

	// Release is idempotent.
	release()
	assert.Equal(t, 0, r.Len())
}

func TestAcquireTimesOutWhileHeld(t *testing.T) {
	r := roomlock.NewRegistry()
	roomID := uuid.New()

	release, err := r.Acquire(context.Background(), roomID, time.Second)
	require.NoError(t, err)
	defer release()

	_, err = r.Acquire(context.Background(), roomID, 20*time.Millisecond)
	require.ErrorIs(t, err, roomlock.ErrTimeout)

	// The failed waiter must not leak a registry entry once the holder
	// is gone.
	release()
	assert.Equal(t, 0, r.Len())
}

func TestAcquireHonorsContext(t *testing.T) {
	r := roomlock.NewRegistry()
	roomID := uuid.New()

	release, err := r.Acquire(context.Background(), roomID, time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = r.Acquire(ctx, roomID, time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRoomsAreIndependent(t *testing.T) {
	r := roomlock.NewRegistry()
	roomA := uuid.New()
	roomB := uuid.New()

	releaseA, err := r.Acquire(context.Background(), roomA, time.Second)
	require.NoError(t, err)
	defer releaseA()

	// Holding room A must not block room B at all.
	releaseB, err := r.Acquire(context.Background(), roomB, 10*time.Millisecond)
	require.NoError(t, err)
	releaseB()
}

func TestAcquireSerializesOneRoom(t *testing.T) {
	r := roomlock.NewRegistry()
	roomID := uuid.New()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		maxSeen int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := r.Acquire(context.Background(), roomID, 5*time.Second)
			if err != nil {
				t.Error(err)
				return
			}
			defer release()

			mu.Lock()
			holders++
			if holders > maxSeen {
				maxSeen = holders
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen, "at most one holder per room at a time")
	assert.Equal(t, 0, r.Len())
}
