package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)

	// List returns all bookings, most recently created first.
	List(ctx context.Context) ([]*Booking, error)

	// UpdateStatus is a targeted update: it touches booking_status, the
	// optional payment_status and updated_at, nothing else.
	UpdateStatus(ctx context.Context, id string, status Status, paymentStatus *PaymentStatus) error

	// Stats counts all bookings, pending ones and those created at or after dayStart.
	Stats(ctx context.Context, dayStart time.Time) (Stats, error)
}

// Querier is the subset of pgx command execution shared by pools and
// transactions, so inserts can participate in the pre-booking redeem
// transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const bookingsTable = "public.bookings"

var bookingColumns = []string{
	"booking_id", "fullname", "mobile", "adults", "children", "room_type",
	"occupancy", "total_amount", "payment_receipt", "payment_status",
	"booking_status", "special_requests", "created_at", "updated_at",
}

// InsertBooking inserts a booking row using the given querier.
func InsertBooking(ctx context.Context, q Querier, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert(bookingsTable).
		Columns(bookingColumns...).
		Values(
			b.BookingID, b.Fullname, b.Mobile, b.Adults, b.Children, b.RoomType,
			b.Occupancy, b.TotalAmount, b.PaymentReceipt, b.PaymentStatus,
			b.BookingStatus, b.SpecialRequests, b.CreatedAt, b.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	return InsertBooking(ctx, r.pool, b)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From(bookingsTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status, paymentStatus *PaymentStatus) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	update := psql.Update(bookingsTable).
		Set("booking_status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"booking_id": id})

	if paymentStatus != nil {
		update = update.Set("payment_status", *paymentStatus)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Stats(ctx context.Context, dayStart time.Time) (Stats, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)").
		Column("count(*) FILTER (WHERE booking_status = 'pending')").
		Column(squirrel.Expr("count(*) FILTER (WHERE created_at >= ?)", dayStart)).
		From(bookingsTable).
		ToSql()
	if err != nil {
		return Stats{}, fmt.Errorf("build booking stats query failed: %w", err)
	}

	var s Stats
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.Total, &s.Pending, &s.Today); err != nil {
		return Stats{}, fmt.Errorf("booking stats failed: %w", err)
	}
	return s, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var receiptRef sql.NullString

	if err := row.Scan(
		&b.BookingID, &b.Fullname, &b.Mobile, &b.Adults, &b.Children, &b.RoomType,
		&b.Occupancy, &b.TotalAmount, &receiptRef, &b.PaymentStatus,
		&b.BookingStatus, &b.SpecialRequests, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if receiptRef.Valid {
		b.PaymentReceipt = &receiptRef.String
	}
	return &b, nil
}
