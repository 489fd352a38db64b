package ledger

import (
	"context"
	"errors"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/infra"
	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeExclusionViolation  = "23P01"
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// PostgresStore is the durable room ledger. The bookings table carries a
// gist exclusion constraint on (room_id, stay) over non-CANCELLED rows;
// admission still serializes per room in-process, so the constraint is
// a backstop against out-of-band writers, not the primary exclusion.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindOverlap(ctx context.Context, roomID uuid.UUID, stay booking.StayRange) (*uuid.UUID, error) {
	const q = `
		SELECT id FROM bookings
		WHERE room_id = $1
		  AND status <> 'CANCELLED'
		  AND stay && daterange($2::date, $3::date, '[)')
		ORDER BY lower(stay)
		LIMIT 1`

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, q, roomID, stay.CheckIn(), stay.CheckOut()).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to query overlapping stays", err)
	}
	return &id, nil
}

func (s *PostgresStore) Insert(ctx context.Context, b *booking.Booking) error {
	const q = `
		INSERT INTO bookings (id, room_id, stay, status, guest_name, guest_email, created_at, updated_at)
		VALUES ($1, $2, daterange($3::date, $4::date, '[)'), $5, $6, $7, $8, $9)`

	_, err := s.pool.Exec(ctx, q,
		b.ID(),
		b.RoomID(),
		b.Stay().CheckIn(),
		b.Stay().CheckOut(),
		b.Status().String(),
		b.Guest().Name(),
		b.Guest().Email(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeExclusionViolation, pgErrCodeUniqueViolation:
				return infra.WrapRepoErr("stay overlaps an active booking", err, infra.KindConflict)
			case pgErrCodeForeignKeyViolation:
				return infra.WrapRepoErr("room does not exist", err, infra.KindNotFound)
			}
		}
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const q = `
		SELECT id, room_id, lower(stay), upper(stay), status, guest_name, guest_email, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	row, err := scanBookingRow(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return row.toEntity(), nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	const q = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, b.ID(), b.Status().String(), b.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// --- read store ---

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const q = `
		SELECT id, room_id, lower(stay), upper(stay), status, guest_name, guest_email, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	row, err := scanBookingRow(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}
	return row.toView(), nil
}

func (s *PostgresStore) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*queries.BookingView, error) {
	const q = `
		SELECT id, room_id, lower(stay), upper(stay), status, guest_name, guest_email, created_at, updated_at
		FROM bookings
		WHERE room_id = $1
		ORDER BY lower(stay)`

	rows, err := s.pool.Query(ctx, q, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by room", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		row, scanErr := scanBookingRow(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		views = append(views, row.toView())
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return views, nil
}

func (s *PostgresStore) ActiveRanges(ctx context.Context, roomID uuid.UUID) ([]*queries.RoomStayView, error) {
	const q = `
		SELECT id, lower(stay), upper(stay), status
		FROM bookings
		WHERE room_id = $1 AND status <> 'CANCELLED'
		ORDER BY lower(stay)`

	rows, err := s.pool.Query(ctx, q, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active stays", err)
	}
	defer rows.Close()

	var views []*queries.RoomStayView
	for rows.Next() {
		view := &queries.RoomStayView{}
		if scanErr := rows.Scan(&view.BookingID, &view.CheckIn, &view.CheckOut, &view.Status); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan active stay row", scanErr)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active stay rows", err)
	}
	return views, nil
}

type bookingRow struct {
	id         uuid.UUID
	roomID     uuid.UUID
	checkIn    time.Time
	checkOut   time.Time
	status     string
	guestName  string
	guestEmail string
	createdAt  time.Time
	updatedAt  time.Time
}

func scanBookingRow(row pgx.Row) (*bookingRow, error) {
	r := &bookingRow{}
	err := row.Scan(
		&r.id,
		&r.roomID,
		&r.checkIn,
		&r.checkOut,
		&r.status,
		&r.guestName,
		&r.guestEmail,
		&r.createdAt,
		&r.updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *bookingRow) toEntity() *booking.Booking {
	stay, _ := booking.NewStayRange(r.checkIn, r.checkOut)
	return booking.ReconstructBooking(
		r.id,
		r.roomID,
		stay,
		booking.Status(r.status),
		booking.NewGuest(r.guestName, r.guestEmail),
		r.createdAt,
		r.updatedAt,
	)
}

func (r *bookingRow) toView() *queries.BookingView {
	return &queries.BookingView{
		ID:         r.id,
		RoomID:     r.roomID,
		CheckIn:    r.checkIn,
		CheckOut:   r.checkOut,
		Status:     r.status,
		GuestName:  r.guestName,
		GuestEmail: r.guestEmail,
		CreatedAt:  r.createdAt,
		UpdatedAt:  r.updatedAt,
	}
}
