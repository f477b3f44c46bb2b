package http

import (
	"time"

	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
)

// BookingResponse is the flattened admin-facing view of a booking. External
// field names differ from the internal ones (adult/room/total_amount) and are
// part of the dashboard contract.
type BookingResponse struct {
	ID              string    `json:"id"`
	Fullname        string    `json:"fullname"`
	Mobile          string    `json:"mobile"`
	Adult           int       `json:"adult"`
	Children        int       `json:"children"`
	Room            string    `json:"room"`
	Occupancy       string    `json:"occupancy"`
	TotalAmount     int       `json:"total_amount"`
	PaymentReceipt  *string   `json:"payment_receipt"`
	PaymentStatus   string    `json:"payment_status"`
	Status          string    `json:"status"`
	SpecialRequests string    `json:"special_requests"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.BookingID,
		Fullname:        b.Fullname,
		Mobile:          b.Mobile,
		Adult:           b.Adults,
		Children:        b.Children,
		Room:            b.RoomType,
		Occupancy:       b.Occupancy,
		TotalAmount:     b.TotalAmount,
		PaymentReceipt:  b.PaymentReceipt,
		PaymentStatus:   string(b.PaymentStatus),
		Status:          string(b.BookingStatus),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
	}
}

// UpdateStatusBody is the admin status transition payload.
type UpdateStatusBody struct {
	Status        string  `json:"status" binding:"required"`
	PaymentStatus *string `json:"payment_status"`
}

// StatsResponse mirrors the admin dashboard counters.
type StatsResponse struct {
	TotalBookings   int `json:"total_bookings"`
	TodayBookings   int `json:"today_bookings"`
	PendingBookings int `json:"pending_bookings"`
}
