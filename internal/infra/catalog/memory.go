package catalog

import (
	"context"
	"sync"

	"roomledger/internal/domain/room"
	"roomledger/internal/infra"

	"github.com/google/uuid"
)

// MemoryCatalog is a fixed room registry for tests and the embedded
// deployment mode. Catalog management is owned by the hotel side, so
// the only write is seeding.
type MemoryCatalog struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*room.Room
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		rooms: make(map[uuid.UUID]*room.Room),
	}
}

func (c *MemoryCatalog) Add(r *room.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[r.ID()] = r
}

func (c *MemoryCatalog) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return r, nil
}
