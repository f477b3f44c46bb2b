package booking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ashokahotel/hotel-booking-backend/internal/config"
	"github.com/ashokahotel/hotel-booking-backend/internal/db"
)

// Failover routes between the durable repository and the in-process fallback
// based on the last observed store health. Writes always land somewhere: the
// fallback list accepts them while the store is down. Reads follow the
// configured degraded-read policy.
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

func (f *Failover) Create(ctx context.Context, b *Booking) error {
	if f.health.Healthy() {
		return f.primary.Create(ctx, b)
	}
	f.logger.WithField("booking_id", b.BookingID).Warn("store down, booking saved to memory")
	return f.fallback.Create(ctx, b)
}

func (f *Failover) GetByID(ctx context.Context, id string) (*Booking, error) {
	if f.health.Healthy() {
		return f.primary.GetByID(ctx, id)
	}
	if f.policy == config.DegradedReadEmpty {
		return nil, ErrNotFound
	}
	return f.fallback.GetByID(ctx, id)
}

func (f *Failover) List(ctx context.Context) ([]*Booking, error) {
	if f.health.Healthy() {
		return f.primary.List(ctx)
	}
	if f.policy == config.DegradedReadEmpty {
		return nil, nil
	}
	return f.fallback.List(ctx)
}

func (f *Failover) UpdateStatus(ctx context.Context, id string, status Status, paymentStatus *PaymentStatus) error {
	if f.health.Healthy() {
		return f.primary.UpdateStatus(ctx, id, status, paymentStatus)
	}
	return f.fallback.UpdateStatus(ctx, id, status, paymentStatus)
}

func (f *Failover) Stats(ctx context.Context, dayStart time.Time) (Stats, error) {
	if f.health.Healthy() {
		return f.primary.Stats(ctx, dayStart)
	}
	if f.policy == config.DegradedReadEmpty {
		return Stats{}, nil
	}
	return f.fallback.Stats(ctx, dayStart)
}
