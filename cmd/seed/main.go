// Command seed loads a small demo catalog into the database so the API can
// be exercised locally without hand-inserting rows.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"roomledger/internal/infra/db"
	"roomledger/internal/pkg/config"
)

type seedRoom struct {
	name     string
	capacity int
}

var demoHotels = map[string][]seedRoom{
	"Grand Meridian": {
		{name: "101", capacity: 2},
		{name: "102", capacity: 2},
		{name: "201 Suite", capacity: 4},
	},
	"Harbor View Inn": {
		{name: "Seaside", capacity: 3},
		{name: "Garden", capacity: 2},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for hotelName, rooms := range demoHotels {
		var hotelID string
		err := pool.QueryRow(ctx, `
			INSERT INTO hotels (name) VALUES ($1)
			ON CONFLICT DO NOTHING
			RETURNING id`, hotelName).Scan(&hotelID)
		if err != nil {
			// Conflict returns no row; look the hotel up instead.
			err = pool.QueryRow(ctx, `SELECT id FROM hotels WHERE name = $1`, hotelName).Scan(&hotelID)
		}
		if err != nil {
			slog.Error("failed to seed hotel", "hotel", hotelName, "error", err)
			os.Exit(1)
		}

		for _, r := range rooms {
			_, err := pool.Exec(ctx, `
				INSERT INTO rooms (hotel_id, name, capacity) VALUES ($1, $2, $3)
				ON CONFLICT (hotel_id, name) DO NOTHING`, hotelID, r.name, r.capacity)
			if err != nil {
				slog.Error("failed to seed room", "hotel", hotelName, "room", r.name, "error", err)
				os.Exit(1)
			}
		}
		slog.Info("seeded hotel", "hotel", hotelName, "rooms", len(rooms))
	}

	slog.Info("seed completed")
}
