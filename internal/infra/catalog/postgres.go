package catalog

import (
	"context"
	"errors"

	"roomledger/internal/domain/room"
	"roomledger/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCatalog struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

func (c *PostgresCatalog) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	const q = `SELECT id, hotel_id, name, capacity FROM rooms WHERE id = $1`

	var (
		roomID   uuid.UUID
		hotelID  uuid.UUID
		name     string
		capacity int
	)
	err := c.pool.QueryRow(ctx, q, id).Scan(&roomID, &hotelID, &name, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return room.NewRoom(roomID, hotelID, name, capacity)
}
