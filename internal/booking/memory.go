package booking

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is the ephemeral fallback store used while the database is
// unreachable. Entries live in process memory and are lost on restart.
// All access is serialized by the mutex.
type MemoryRepository struct {
	mu       sync.Mutex
	bookings []*Booking
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.BookingID == b.BookingID {
			return ErrDuplicateID
		}
	}

	clone := *b
	r.bookings = append(r.bookings, &clone)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.BookingID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) List(ctx context.Context) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Entries are appended in creation order; reverse for newest-first.
	out := make([]*Booking, 0, len(r.bookings))
	for i := len(r.bookings) - 1; i >= 0; i-- {
		clone := *r.bookings[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status Status, paymentStatus *PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.BookingID == id {
			b.BookingStatus = status
			if paymentStatus != nil {
				b.PaymentStatus = *paymentStatus
			}
			b.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) Stats(ctx context.Context, dayStart time.Time) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s Stats
	s.Total = len(r.bookings)
	for _, b := range r.bookings {
		if b.BookingStatus == StatusPending {
			s.Pending++
		}
		if !b.CreatedAt.Before(dayStart) {
			s.Today++
		}
	}
	return s, nil
}
