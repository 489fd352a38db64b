package response

import (
	"time"

	"roomledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Status     string    `json:"status"`
	GuestName  string    `json:"guest_name,omitempty"`
	GuestEmail string    `json:"guest_email,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	resp.CheckIn = v.CheckIn.Format(dateLayout)
	resp.CheckOut = v.CheckOut.Format(dateLayout)
	return resp
}

func FromBookingViews(views []*queries.BookingView) []BookingResponse {
	resps := make([]BookingResponse, len(views))
	for i, v := range views {
		resps[i] = FromBookingView(v)
	}
	return resps
}

type RoomStayResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Status    string    `json:"status"`
}

func FromRoomStayViews(views []*queries.RoomStayView) []RoomStayResponse {
	resps := make([]RoomStayResponse, len(views))
	for i, v := range views {
		resps[i] = RoomStayResponse{
			BookingID: v.BookingID,
			CheckIn:   v.CheckIn.Format(dateLayout),
			CheckOut:  v.CheckOut.Format(dateLayout),
			Status:    v.Status,
		}
	}
	return resps
}
