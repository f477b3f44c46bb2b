package http

import (
	"time"

	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
	"github.com/ashokahotel/hotel-booking-backend/internal/prebooking"
)

// CreateLinkBody is the staff payload for issuing a booking link.
type CreateLinkBody struct {
	Fullname        string `json:"fullname" binding:"required"`
	Mobile          string `json:"mobile" binding:"required"`
	Adult           int    `json:"adult" binding:"required"`
	Children        int    `json:"children"`
	Room            string `json:"room" binding:"required"`
	Occupancy       string `json:"occupancy"`
	TotalAmount     int    `json:"total_amount" binding:"required"`
	SpecialRequests string `json:"special_requests"`
}

func (b CreateLinkBody) details() booking.Details {
	return booking.Details{
		Fullname:        b.Fullname,
		Mobile:          b.Mobile,
		Adults:          b.Adult,
		Children:        b.Children,
		RoomType:        b.Room,
		Occupancy:       b.Occupancy,
		TotalAmount:     b.TotalAmount,
		SpecialRequests: b.SpecialRequests,
	}
}

// PreBookingResponse is the guest-facing subset shown on the completion page.
// The internal status and link are not exposed.
type PreBookingResponse struct {
	ID          string    `json:"id"`
	Fullname    string    `json:"fullname"`
	Mobile      string    `json:"mobile"`
	Adult       int       `json:"adult"`
	Children    int       `json:"children"`
	Room        string    `json:"room"`
	Occupancy   string    `json:"occupancy"`
	TotalAmount int       `json:"total_amount"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func NewPreBookingResponse(p *prebooking.PreBooking) PreBookingResponse {
	return PreBookingResponse{
		ID:          p.PreBookingID,
		Fullname:    p.Fullname,
		Mobile:      p.Mobile,
		Adult:       p.Adults,
		Children:    p.Children,
		Room:        p.RoomType,
		Occupancy:   p.Occupancy,
		TotalAmount: p.TotalAmount,
		ExpiresAt:   p.ExpiresAt,
	}
}
