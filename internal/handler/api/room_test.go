//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"roomledger/internal/handler/api"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/usecase/queries"
	"roomledger/tests/common/builder"
	"roomledger/tests/common/httptest"
	queriesmock "roomledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	handler     *api.RoomHandler
}

func (s *RoomHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewRoomHandler(s.mockQueries)

	s.router.GET("/rooms/:id/bookings", s.handler.ListBookings)
	s.router.GET("/rooms/:id/availability", s.handler.Availability)
}

func (s *RoomHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}

func (s *RoomHandlerTestSuite) TestListBookings() {
	roomID := uuid.New()
	url := "/rooms/" + roomID.String() + "/bookings"

	s.Run("success: returns all bookings in check-in order", func() {
		views := []*queries.BookingView{
			builder.NewBookingBuilder().WithRoom(roomID).WithStay("2026-09-01", "2026-09-05").BuildView(),
			builder.NewBookingBuilder().WithRoom(roomID).WithStay("2026-09-10", "2026-09-14").BuildView(),
		}
		s.mockQueries.EXPECT().ListByRoom(gomock.Any(), roomID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("2026-09-01", body[0]["check_in"])
		s.Equal("2026-09-10", body[1]["check_in"])
	})

	s.Run("success: empty room yields an empty list", func() {
		s.mockQueries.EXPECT().ListByRoom(gomock.Any(), roomID).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on a malformed room ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/abc/bookings", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid room ID")
	})

	s.Run("error: 500 on a store failure", func() {
		s.mockQueries.EXPECT().ListByRoom(gomock.Any(), roomID).Return(nil, errs.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}

func (s *RoomHandlerTestSuite) TestAvailability() {
	roomID := uuid.New()
	url := "/rooms/" + roomID.String() + "/availability"

	s.Run("success: returns active stays only", func() {
		views := []*queries.RoomStayView{
			{
				BookingID: uuid.New(),
				CheckIn:   builder.NewBookingBuilder().BuildView().CheckIn,
				CheckOut:  builder.NewBookingBuilder().BuildView().CheckOut,
				Status:    "CONFIRMED",
			},
		}
		s.mockQueries.EXPECT().ActiveRanges(gomock.Any(), roomID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("CONFIRMED", body[0]["status"])
		s.Equal("2026-09-10", body[0]["check_in"])
		s.Equal("2026-09-14", body[0]["check_out"])
	})

	s.Run("error: 400 on a malformed room ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/abc/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid room ID")
	})
}
