package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.NotFound("booking not found")
	ErrFullnameRequired     = apperror.BadRequest("fullname is required")
	ErrMobileRequired       = apperror.BadRequest("mobile is required")
	ErrInvalidAdults        = apperror.BadRequest("adults must be at least 1")
	ErrInvalidChildren      = apperror.BadRequest("children must not be negative")
	ErrInvalidRoomType      = apperror.BadRequest("unknown room type")
	ErrInvalidAmount        = apperror.BadRequest("total amount must be a positive integer")
	ErrInvalidStatus        = apperror.BadRequest("invalid booking status")
	ErrInvalidPaymentStatus = apperror.BadRequest("invalid payment status")
	ErrStatusFinal          = apperror.BadRequest("booking status can no longer change")
	ErrDuplicateID          = apperror.New(http.StatusConflict, "booking id already exists")
)

// IDPrefix starts every booking ID; the rest is a millisecond timestamp.
const IDPrefix = "ASH"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the booking status values.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ValidPaymentStatus reports whether s is one of the payment status values.
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

// Room categories offered by the hotel.
const (
	RoomStandard = "Standard Room"
	RoomDeluxe   = "Deluxe Room"
	RoomSuite    = "Suite Room"
)

// ValidRoomType reports whether roomType is an offered room category.
func ValidRoomType(roomType string) bool {
	switch roomType {
	case RoomStandard, RoomDeluxe, RoomSuite:
		return true
	}
	return false
}

// Booking is a confirmed-or-pending guest reservation.
// BookingID is assigned exactly once at creation and never recomputed.
type Booking struct {
	BookingID       string
	Fullname        string
	Mobile          string
	Adults          int
	Children        int
	RoomType        string
	Occupancy       string
	TotalAmount     int
	PaymentReceipt  *string
	PaymentStatus   PaymentStatus
	BookingStatus   Status
	SpecialRequests string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Details are the guest-supplied fields shared by booking submissions and
// pre-booking links.
type Details struct {
	Fullname        string
	Mobile          string
	Adults          int
	Children        int
	RoomType        string
	Occupancy       string
	TotalAmount     int
	SpecialRequests string
}

// Validate checks the required fields. It is called before any storage or
// upload work so invalid submissions have no side effects.
func (d Details) Validate() error {
	if strings.TrimSpace(d.Fullname) == "" {
		return ErrFullnameRequired
	}
	if strings.TrimSpace(d.Mobile) == "" {
		return ErrMobileRequired
	}
	if d.Adults < 1 {
		return ErrInvalidAdults
	}
	if d.Children < 0 {
		return ErrInvalidChildren
	}
	if !ValidRoomType(d.RoomType) {
		return ErrInvalidRoomType
	}
	if d.TotalAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Stats summarizes the booking collection for the admin dashboard.
type Stats struct {
	Total   int
	Today   int
	Pending int
}
