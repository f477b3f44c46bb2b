package booking

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/apperror"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/idgen"
	"github.com/ashokahotel/hotel-booking-backend/internal/receipt"
)

// SubmitRequest carries a booking submission. Receipt is nil when no payment
// proof was attached.
type SubmitRequest struct {
	Details
	Receipt *receipt.Upload
}

// UpdateStatusRequest carries a status transition. PaymentStatus is optional.
type UpdateStatusRequest struct {
	Status        string
	PaymentStatus *string
}

type Service interface {
	// Submit creates a guest booking in pending status.
	Submit(ctx context.Context, req SubmitRequest) (*Booking, error)

	// SubmitAsStaff creates a booking on behalf of staff; it skips the pending
	// review step and starts confirmed.
	SubmitAsStaff(ctx context.Context, req SubmitRequest) (*Booking, error)

	// Create persists an already-built booking (used by pre-booking redemption).
	Create(ctx context.Context, b *Booking) error

	// Build assembles a new pending Booking from details without persisting it.
	Build(details Details, receiptRef *string) *Booking

	List(ctx context.Context) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) error
	Stats(ctx context.Context) (Stats, error)

	// StoreReceipt uploads a payment receipt, absorbing upstream failures:
	// a nil reference with no error means the upload failed and was logged.
	StoreReceipt(ctx context.Context, up *receipt.Upload) (*string, error)
}

type service struct {
	repo     Repository
	receipts receipt.Store
	ids      *idgen.Generator
	logger   *logrus.Logger
}

func NewService(repo Repository, receipts receipt.Store, ids *idgen.Generator, logger *logrus.Logger) Service {
	return &service{
		repo:     repo,
		receipts: receipts,
		ids:      ids,
		logger:   logger,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Booking, error) {
	return s.submit(ctx, req, StatusPending)
}

func (s *service) SubmitAsStaff(ctx context.Context, req SubmitRequest) (*Booking, error) {
	return s.submit(ctx, req, StatusConfirmed)
}

func (s *service) submit(ctx context.Context, req SubmitRequest, status Status) (*Booking, error) {
	if err := req.Details.Validate(); err != nil {
		return nil, err
	}

	receiptRef, err := s.StoreReceipt(ctx, req.Receipt)
	if err != nil {
		return nil, err
	}

	b := s.Build(req.Details, receiptRef)
	b.BookingStatus = status

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": b.BookingID,
		"room_type":  b.RoomType,
		"status":     b.BookingStatus,
	}).Info("booking created")

	return b, nil
}

// StoreReceipt uploads the receipt if one is attached. Client faults (too
// large, not an image) surface to the caller; upstream failures must never
// abort booking creation, so they are logged and swallowed.
func (s *service) StoreReceipt(ctx context.Context, up *receipt.Upload) (*string, error) {
	if up == nil {
		return nil, nil
	}

	url, err := s.receipts.Save(ctx, *up)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		s.logger.WithError(err).Warn("receipt upload failed, continuing without receipt")
		return nil, nil
	}
	return &url, nil
}

// Build assembles a pending booking with a fresh ID and timestamps.
func (s *service) Build(details Details, receiptRef *string) *Booking {
	now := time.Now().UTC()
	return &Booking{
		BookingID:       s.ids.Next(IDPrefix),
		Fullname:        details.Fullname,
		Mobile:          details.Mobile,
		Adults:          details.Adults,
		Children:        details.Children,
		RoomType:        details.RoomType,
		Occupancy:       details.Occupancy,
		TotalAmount:     details.TotalAmount,
		PaymentReceipt:  receiptRef,
		PaymentStatus:   PaymentPending,
		BookingStatus:   StatusPending,
		SpecialRequests: details.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *service) Create(ctx context.Context, b *Booking) error {
	return s.repo.Create(ctx, b)
}

func (s *service) List(ctx context.Context) ([]*Booking, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) error {
	status := Status(req.Status)
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	var paymentStatus *PaymentStatus
	if req.PaymentStatus != nil {
		ps := PaymentStatus(*req.PaymentStatus)
		if !ValidPaymentStatus(ps) {
			return ErrInvalidPaymentStatus
		}
		paymentStatus = &ps
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Confirmed and cancelled are terminal; only pending bookings move.
	if current.BookingStatus != StatusPending && status != current.BookingStatus {
		return ErrStatusFinal
	}
	if status == current.BookingStatus && paymentStatus == nil {
		return nil
	}

	return s.repo.UpdateStatus(ctx, id, status, paymentStatus)
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	return s.repo.Stats(ctx, dayStart)
}
