package prebooking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/idgen"
	"github.com/ashokahotel/hotel-booking-backend/internal/receipt"
)

type Service interface {
	// CreateLink validates the staff-entered details and issues a shareable
	// link valid for 24 hours.
	CreateLink(ctx context.Context, details booking.Details) (*PreBooking, error)

	// Resolve returns the pre-booking for the guest completion page, only
	// while it is pending and unexpired.
	Resolve(ctx context.Context, id string) (*PreBooking, error)

	// Complete redeems the link into a pending Booking. The pending/unexpired
	// condition is rechecked at redemption time; resolve results are not
	// trusted across the gap.
	Complete(ctx context.Context, id string, rcpt *receipt.Upload) (*booking.Booking, error)
}

type service struct {
	repo     Repository
	bookings booking.Service
	ids      *idgen.Generator
	baseURL  string
	logger   *logrus.Logger
}

func NewService(repo Repository, bookings booking.Service, ids *idgen.Generator, baseURL string, logger *logrus.Logger) Service {
	return &service{
		repo:     repo,
		bookings: bookings,
		ids:      ids,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
	}
}

func (s *service) CreateLink(ctx context.Context, details booking.Details) (*PreBooking, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id := s.ids.Next(IDPrefix)

	p := &PreBooking{
		PreBookingID:    id,
		Fullname:        details.Fullname,
		Mobile:          details.Mobile,
		Adults:          details.Adults,
		Children:        details.Children,
		RoomType:        details.RoomType,
		Occupancy:       details.Occupancy,
		TotalAmount:     details.TotalAmount,
		SpecialRequests: details.SpecialRequests,
		BookingLink:     fmt.Sprintf("%s/%s?id=%s", s.baseURL, completionPage(details.RoomType), id),
		Status:          StatusPending,
		ExpiresAt:       now.Add(Validity),
		CreatedAt:       now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"pre_booking_id": p.PreBookingID,
		"expires_at":     p.ExpiresAt,
	}).Info("booking link created")

	return p, nil
}

func (s *service) Resolve(ctx context.Context, id string) (*PreBooking, error) {
	return s.repo.GetActive(ctx, id, time.Now().UTC())
}

func (s *service) Complete(ctx context.Context, id string, rcpt *receipt.Upload) (*booking.Booking, error) {
	now := time.Now().UTC()

	p, err := s.repo.GetActive(ctx, id, now)
	if err != nil {
		return nil, err
	}

	receiptRef, err := s.bookings.StoreReceipt(ctx, rcpt)
	if err != nil {
		return nil, err
	}

	b := s.bookings.Build(booking.Details{
		Fullname:        p.Fullname,
		Mobile:          p.Mobile,
		Adults:          p.Adults,
		Children:        p.Children,
		RoomType:        p.RoomType,
		Occupancy:       p.Occupancy,
		TotalAmount:     p.TotalAmount,
		SpecialRequests: p.SpecialRequests,
	}, receiptRef)

	if err := s.repo.Redeem(ctx, id, now, b); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"pre_booking_id": id,
		"booking_id":     b.BookingID,
	}).Info("booking link redeemed")

	return b, nil
}
