//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"roomledger/internal/handler/dto/request"
	"roomledger/internal/handler/dto/response"
	"roomledger/tests/common/dbtest"
	"roomledger/tests/common/httptest"
	"roomledger/tests/e2e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL         = "/api/bookings"
	roomBookingsURL     = "/api/rooms/%s/bookings"
	roomAvailabilityURL = "/api/rooms/%s/availability"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) seedRoom(name string) uuid.UUID {
	hotelID := dbtest.CreateTestHotel(s.T(), s.DB, "Default Hotel")
	return dbtest.CreateTestRoom(s.T(), s.DB, hotelID, name)
}

func (s *BookingSuite) createBooking(roomID uuid.UUID, checkIn, checkOut string) request.CreateBookingRequest {
	return request.CreateBookingRequest{
		RoomID:     roomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestName:  "Ada Lovelace",
		GuestEmail: "ada@example.com",
	}
}

// =============================================================================
// TestBookingAdmission - creation via the API
// =============================================================================

func (s *BookingSuite) TestBookingAdmission() {
	s.Run("Normal case: books a free range", func() {
		roomID := s.seedRoom("101")
		reqBody := s.createBooking(roomID, "2026-09-10", "2026-09-14")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, reqBody, "")

		var body response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(roomID, body.RoomID)
		s.Equal("PENDING", body.Status)
		s.Equal("2026-09-10", body.CheckIn)
		s.Equal("2026-09-14", body.CheckOut)
	})

	s.Run("Error case: overlapping range is rejected with the blocker", func() {
		roomID := s.seedRoom("101")

		first := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-10", "2026-09-14"), "")
		var firstBody response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), first, http.StatusCreated, &firstBody)

		second := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-12", "2026-09-16"), "")

		var errBody struct {
			Detail struct {
				ConflictingBookingID uuid.UUID `json:"conflicting_booking_id"`
			} `json:"detail"`
		}
		s.Equal(http.StatusConflict, second.Code)
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), second.Body, &errBody))
		s.Equal(firstBody.ID, errBody.Detail.ConflictingBookingID)
	})

	s.Run("Normal case: back-to-back stays on the same room", func() {
		roomID := s.seedRoom("101")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-10", "2026-09-14"), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-14", "2026-09-18"), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("Error case: invalid range", func() {
		roomID := s.seedRoom("101")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-14", "2026-09-10"), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("Error case: unknown room", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(uuid.New(), "2026-09-10", "2026-09-14"), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestConcurrentAdmission - exactly one winner under racing requests
// =============================================================================

func (s *BookingSuite) TestConcurrentAdmission() {
	s.Run("Normal case: 10 racing requests admit exactly one booking", func() {
		roomID := s.seedRoom("101")
		reqBody := s.createBooking(roomID, "2026-09-10", "2026-09-14")

		const attempts = 10
		codes := make(chan int, attempts)

		var wg sync.WaitGroup
		for range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, reqBody, "")
				codes <- rec.Code
			}()
		}
		wg.Wait()
		close(codes)

		var created, conflicted int
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				s.T().Errorf("unexpected status code %d", code)
			}
		}
		s.Equal(1, created)
		s.Equal(attempts-1, conflicted)

		// The ledger holds exactly one active stay.
		url := fmt.Sprintf(roomAvailabilityURL, roomID)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, "")

		var stays []response.RoomStayResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &stays)
		s.Len(stays, 1)
	})
}

// =============================================================================
// TestStorageBackstop - the exclusion constraint behind the admission lock
// =============================================================================

func (s *BookingSuite) TestStorageBackstop() {
	s.Run("Error case: a write bypassing admission still cannot overlap", func() {
		roomID := s.seedRoom("101")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-10", "2026-09-14"), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		// Raw insert straight into the table, as an out-of-band writer would.
		_, err := s.DB.Exec(s.T().Context(), `
			INSERT INTO bookings (id, room_id, stay, status, guest_name, created_at, updated_at)
			VALUES ($1, $2, daterange('2026-09-12', '2026-09-16', '[)'), 'PENDING', 'intruder', now(), now())`,
			uuid.New(), roomID)
		s.Require().Error(err)

		var pgErr *pgconn.PgError
		s.Require().ErrorAs(err, &pgErr)
		s.Equal("23P01", pgErr.Code)

		// A cancelled booking is outside the constraint.
		_, err = s.DB.Exec(s.T().Context(), `
			INSERT INTO bookings (id, room_id, stay, status, guest_name, created_at, updated_at)
			VALUES ($1, $2, daterange('2026-09-12', '2026-09-16', '[)'), 'CANCELLED', 'historic', now(), now())`,
			uuid.New(), roomID)
		s.NoError(err)
	})
}

// =============================================================================
// TestBookingLifecycle - confirm / cancel over the API
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: confirm then cancel frees the range", func() {
		roomID := s.seedRoom("101")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-10", "2026-09-14"), "")
		var created response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/confirm", nil, "")
		var confirmed response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &confirmed)
		s.Equal("CONFIRMED", confirmed.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/cancel", nil, "")
		var cancelled response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
		s.Equal("CANCELLED", cancelled.Status)

		// The identical range is admissible again.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-10", "2026-09-14"), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("Error case: cancelling twice returns 422", func() {
		roomID := s.seedRoom("101")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-10", "2026-09-14"), "")
		var created response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)

		cancelURL := bookingsURL + "/" + created.ID.String() + "/cancel"
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

// =============================================================================
// TestRoomQueries - read side over the API
// =============================================================================

func (s *BookingSuite) TestRoomQueries() {
	s.Run("Normal case: cancelled stays appear in history but not availability", func() {
		roomID := s.seedRoom("101")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-10", "2026-09-14"), "")
		var kept response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &kept)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL,
			s.createBooking(roomID, "2026-09-20", "2026-09-24"), "")
		var dropped response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &dropped)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			bookingsURL+"/"+dropped.ID.String()+"/cancel", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf(roomBookingsURL, roomID), nil, "")
		var all []response.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &all)
		s.Len(all, 2)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf(roomAvailabilityURL, roomID), nil, "")
		var active []response.RoomStayResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &active)
		s.Require().Len(active, 1)
		s.Equal(kept.ID, active[0].BookingID)
	})
}
