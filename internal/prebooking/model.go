package prebooking

import (
	"time"

	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/apperror"
)

// ErrNotFound covers unknown, expired and already-redeemed links alike; the
// guest-facing message never distinguishes them.
var ErrNotFound = apperror.NotFound("booking link expired or not found")

// IDPrefix starts every pre-booking ID.
const IDPrefix = "PRE"

// Validity is the fixed window during which a link can be redeemed.
const Validity = 24 * time.Hour

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	// StatusExpired is never written; expiry is enforced by query-time
	// filtering on expires_at.
	StatusExpired Status = "expired"
)

// PreBooking is a staff-issued, time-limited offer that a guest redeems into
// a Booking. It can be redeemed at most once, and only while pending and
// unexpired.
type PreBooking struct {
	PreBookingID    string
	Fullname        string
	Mobile          string
	Adults          int
	Children        int
	RoomType        string
	Occupancy       string
	TotalAmount     int
	SpecialRequests string
	BookingLink     string
	Status          Status
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// Completion page per room category; unrecognized rooms fall back to the
// standard page. The slug is embedded in the shareable link.
var completionPages = map[string]string{
	booking.RoomStandard: "complete-booking-standard.html",
	booking.RoomDeluxe:   "complete-booking-deluxe.html",
	booking.RoomSuite:    "complete-booking-suite.html",
}

const defaultCompletionPage = "complete-booking-standard.html"

func completionPage(roomType string) string {
	if page, ok := completionPages[roomType]; ok {
		return page
	}
	return defaultCompletionPage
}
