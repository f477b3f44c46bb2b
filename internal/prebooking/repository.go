package prebooking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
)

type Repository interface {
	Create(ctx context.Context, p *PreBooking) error

	// GetActive returns the pre-booking only while it is pending and unexpired
	// as of now; anything else is ErrNotFound.
	GetActive(ctx context.Context, id string, now time.Time) (*PreBooking, error)

	// Redeem atomically marks the pre-booking completed and creates the
	// resulting booking. The completion is conditional on the pending and
	// unexpired state, so a link can be redeemed at most once.
	Redeem(ctx context.Context, id string, now time.Time, b *booking.Booking) error
}

const preBookingsTable = "public.pre_bookings"

var preBookingColumns = []string{
	"pre_booking_id", "fullname", "mobile", "adults", "children", "room_type",
	"occupancy", "total_amount", "special_requests", "booking_link", "status",
	"expires_at", "created_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *PreBooking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert(preBookingsTable).
		Columns(preBookingColumns...).
		Values(
			p.PreBookingID, p.Fullname, p.Mobile, p.Adults, p.Children, p.RoomType,
			p.Occupancy, p.TotalAmount, p.SpecialRequests, p.BookingLink, p.Status,
			p.ExpiresAt, p.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert pre-booking query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pre-booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetActive(ctx context.Context, id string, now time.Time) (*PreBooking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(preBookingColumns...).
		From(preBookingsTable).
		Where(squirrel.Eq{"pre_booking_id": id, "status": StatusPending}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get pre-booking query failed: %w", err)
	}

	var p PreBooking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.PreBookingID, &p.Fullname, &p.Mobile, &p.Adults, &p.Children, &p.RoomType,
		&p.Occupancy, &p.TotalAmount, &p.SpecialRequests, &p.BookingLink, &p.Status,
		&p.ExpiresAt, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pre-booking failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) Redeem(ctx context.Context, id string, now time.Time, b *booking.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin redeem transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update(preBookingsTable).
		Set("status", StatusCompleted).
		Where(squirrel.Eq{"pre_booking_id": id, "status": StatusPending}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build complete pre-booking query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("complete pre-booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := booking.InsertBooking(ctx, tx, b); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
