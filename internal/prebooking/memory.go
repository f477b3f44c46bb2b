package prebooking

import (
	"context"
	"sync"
	"time"

	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
)

// MemoryRepository is the ephemeral fallback store for pre-bookings, scoped to
// its own list and mutex; bookings created on redemption go to the booking
// fallback repository.
type MemoryRepository struct {
	mu          sync.Mutex
	preBookings []*PreBooking
	bookings    booking.Repository
}

func NewMemoryRepository(bookings booking.Repository) *MemoryRepository {
	return &MemoryRepository{bookings: bookings}
}

func (r *MemoryRepository) Create(ctx context.Context, p *PreBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *p
	r.preBookings = append(r.preBookings, &clone)
	return nil
}

func (r *MemoryRepository) GetActive(ctx context.Context, id string, now time.Time) (*PreBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findActive(id, now)
	if p == nil {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *MemoryRepository) Redeem(ctx context.Context, id string, now time.Time, b *booking.Booking) error {
	r.mu.Lock()
	p := r.findActive(id, now)
	if p == nil {
		r.mu.Unlock()
		return ErrNotFound
	}
	// Flip under the lock so a second redemption attempt loses.
	p.Status = StatusCompleted
	r.mu.Unlock()

	if err := r.bookings.Create(ctx, b); err != nil {
		// Put the link back; the guest should be able to retry.
		r.mu.Lock()
		p.Status = StatusPending
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *MemoryRepository) findActive(id string, now time.Time) *PreBooking {
	for _, p := range r.preBookings {
		if p.PreBookingID == id && p.Status == StatusPending && p.ExpiresAt.After(now) {
			return p
		}
	}
	return nil
}
