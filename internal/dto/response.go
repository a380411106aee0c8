package dto

import (
	"time"

	"github.com/hotelhub/booking-service/internal/models"
)

type BookingResponse struct {
	ID         uint      `json:"id"`
	RoomID     uint      `json:"room_id"`
	CustomerID uint      `json:"customer_id"`
	EmployeeID *uint     `json:"employee_id,omitempty"`
	ReservedAt time.Time `json:"reserved_at"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int       `json:"nights"`
	CheckedIn  bool      `json:"checked_in"`
	Paid       bool      `json:"paid"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		CustomerID: b.CustomerID,
		EmployeeID: b.EmployeeID,
		ReservedAt: b.ReservedAt,
		CheckIn:    b.CheckIn.Format("2006-01-02"),
		CheckOut:   b.CheckOut.Format("2006-01-02"),
		Nights:     b.Stay().Nights(),
		CheckedIn:  b.CheckedIn,
		Paid:       b.Paid,
	}
}
