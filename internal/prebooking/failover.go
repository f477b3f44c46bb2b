package prebooking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
	"github.com/ashokahotel/hotel-booking-backend/internal/config"
	"github.com/ashokahotel/hotel-booking-backend/internal/db"
)

// Failover routes pre-booking operations between the durable repository and
// the in-process fallback based on the last observed store health, mirroring
// the booking failover.
type Failover struct {
	primary  Repository
	fallback Repository
	health   db.Health
	policy   config.DegradedReadPolicy
	logger   *logrus.Logger
}

func NewFailover(primary Repository, fallback *MemoryRepository, health db.Health, policy config.DegradedReadPolicy, logger *logrus.Logger) *Failover {
	return &Failover{
		primary:  primary,
		fallback: fallback,
		health:   health,
		policy:   policy,
		logger:   logger,
	}
}

func (f *Failover) Create(ctx context.Context, p *PreBooking) error {
	if f.health.Healthy() {
		return f.primary.Create(ctx, p)
	}
	f.logger.WithField("pre_booking_id", p.PreBookingID).Warn("store down, pre-booking saved to memory")
	return f.fallback.Create(ctx, p)
}

func (f *Failover) GetActive(ctx context.Context, id string, now time.Time) (*PreBooking, error) {
	if f.health.Healthy() {
		return f.primary.GetActive(ctx, id, now)
	}
	if f.policy == config.DegradedReadEmpty {
		return nil, ErrNotFound
	}
	return f.fallback.GetActive(ctx, id, now)
}

func (f *Failover) Redeem(ctx context.Context, id string, now time.Time, b *booking.Booking) error {
	if f.health.Healthy() {
		return f.primary.Redeem(ctx, id, now, b)
	}
	return f.fallback.Redeem(ctx, id, now, b)
}
