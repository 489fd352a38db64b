//go:build unit || e2e || integration

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestHotel(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	hotelID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO hotels (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", hotelID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM hotels WHERE name = $1", name).Scan(&hotelID)
	}

	return hotelID
}

func CreateTestRoom(t *testing.T, db DBLike, hotelID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO rooms (id, hotel_id, name, capacity) VALUES ($1, $2, $3, 2) ON CONFLICT (hotel_id, name) DO NOTHING",
		roomID, hotelID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM rooms WHERE hotel_id = $1 AND name = $2", hotelID, name).Scan(&roomID)
	}

	return roomID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO hotels (id, name) VALUES
		    (gen_random_uuid(), 'Default Hotel')
		ON CONFLICT (name) DO NOTHING;
	`)
	return err
}

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := pool.Query(ctx, `
	  SELECT 'public.' || quote_ident(tablename)
	  FROM pg_tables
	  WHERE schemaname = 'public'
	    AND tablename NOT IN ('schema_migrations')`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return err
		}
		tables = append(tables, t)
	}
	if rows.Err() != nil {
		return rows.Err()
	}
	if len(tables) == 0 {
		return fmt.Errorf("no tables to truncate")
	}

	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE;"); err != nil {
		return err
	}
	return SeedReferenceData(pool)
}
