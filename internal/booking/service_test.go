package booking

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/idgen"
	"github.com/ashokahotel/hotel-booking-backend/internal/receipt"
)

// fakeReceiptStore records calls and answers with a fixed URL or error.
type fakeReceiptStore struct {
	url   string
	err   error
	calls int
}

func (f *fakeReceiptStore) Save(ctx context.Context, up receipt.Upload) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func validDetails() Details {
	return Details{
		Fullname:    "A",
		Mobile:      "999",
		Adults:      2,
		RoomType:    RoomStandard,
		TotalAmount: 2000,
	}
}

func newTestService(t *testing.T) (Service, *MemoryRepository, *fakeReceiptStore) {
	t.Helper()
	repo := NewMemoryRepository()
	receipts := &fakeReceiptStore{url: "http://localhost/files/receipts/ab/x.jpg"}
	svc := NewService(repo, receipts, idgen.New(), testLogger())
	return svc, repo, receipts
}

func TestSubmitCreatesPendingBooking(t *testing.T) {
	svc, repo, _ := newTestService(t)

	b, err := svc.Submit(context.Background(), SubmitRequest{Details: validDetails()})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(b.BookingID, IDPrefix))
	assert.Equal(t, StatusPending, b.BookingStatus)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
	assert.Nil(t, b.PaymentReceipt)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)

	stored, err := repo.GetByID(context.Background(), b.BookingID)
	require.NoError(t, err)
	assert.Equal(t, b.Fullname, stored.Fullname)
}

func TestSubmitGeneratesUniqueIDs(t *testing.T) {
	svc, _, _ := newTestService(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		b, err := svc.Submit(context.Background(), SubmitRequest{Details: validDetails()})
		require.NoError(t, err)
		assert.False(t, seen[b.BookingID], "duplicate booking id %s", b.BookingID)
		seen[b.BookingID] = true
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Details)
		wantErr error
	}{
		{"missing fullname", func(d *Details) { d.Fullname = "  " }, ErrFullnameRequired},
		{"missing mobile", func(d *Details) { d.Mobile = "" }, ErrMobileRequired},
		{"zero adults", func(d *Details) { d.Adults = 0 }, ErrInvalidAdults},
		{"negative children", func(d *Details) { d.Children = -1 }, ErrInvalidChildren},
		{"unknown room", func(d *Details) { d.RoomType = "Penthouse" }, ErrInvalidRoomType},
		{"zero amount", func(d *Details) { d.TotalAmount = 0 }, ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, receipts := newTestService(t)

			details := validDetails()
			tc.mutate(&details)

			_, err := svc.Submit(context.Background(), SubmitRequest{
				Details: details,
				Receipt: &receipt.Upload{Filename: "r.jpg", ContentType: "image/jpeg", Content: []byte("x")},
			})
			require.ErrorIs(t, err, tc.wantErr)

			// Invalid submissions must have no side effects.
			bookings, _ := repo.List(context.Background())
			assert.Empty(t, bookings)
			assert.Zero(t, receipts.calls)
		})
	}
}

func TestSubmitReceiptUploadFailureIsAbsorbed(t *testing.T) {
	repo := NewMemoryRepository()
	receipts := &fakeReceiptStore{err: errors.New("upstream down")}
	svc := NewService(repo, receipts, idgen.New(), testLogger())

	b, err := svc.Submit(context.Background(), SubmitRequest{
		Details: validDetails(),
		Receipt: &receipt.Upload{Filename: "r.jpg", ContentType: "image/jpeg", Content: []byte("x")},
	})
	require.NoError(t, err)
	assert.Nil(t, b.PaymentReceipt)
	assert.Equal(t, 1, receipts.calls)
}

func TestSubmitReceiptTooLargeAbortsBooking(t *testing.T) {
	repo := NewMemoryRepository()
	receipts := &fakeReceiptStore{err: receipt.ErrTooLarge}
	svc := NewService(repo, receipts, idgen.New(), testLogger())

	_, err := svc.Submit(context.Background(), SubmitRequest{
		Details: validDetails(),
		Receipt: &receipt.Upload{Filename: "r.jpg", ContentType: "image/jpeg", Content: []byte("x")},
	})
	require.ErrorIs(t, err, receipt.ErrTooLarge)

	bookings, _ := repo.List(context.Background())
	assert.Empty(t, bookings)
}

func TestSubmitStoresReceiptReference(t *testing.T) {
	svc, _, receipts := newTestService(t)

	b, err := svc.Submit(context.Background(), SubmitRequest{
		Details: validDetails(),
		Receipt: &receipt.Upload{Filename: "r.jpg", ContentType: "image/jpeg", Content: []byte("x")},
	})
	require.NoError(t, err)
	require.NotNil(t, b.PaymentReceipt)
	assert.Equal(t, receipts.url, *b.PaymentReceipt)
}

func TestSubmitAsStaffIsConfirmed(t *testing.T) {
	svc, _, _ := newTestService(t)

	b, err := svc.SubmitAsStaff(context.Background(), SubmitRequest{Details: validDetails()})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.BookingStatus)
}

func TestListNewestFirst(t *testing.T) {
	svc, _, _ := newTestService(t)

	var ids []string
	for i := 0; i < 3; i++ {
		b, err := svc.Submit(context.Background(), SubmitRequest{Details: validDetails()})
		require.NoError(t, err)
		ids = append(ids, b.BookingID)
	}

	bookings, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, ids[2], bookings[0].BookingID)
	assert.Equal(t, ids[1], bookings[1].BookingID)
	assert.Equal(t, ids[0], bookings[2].BookingID)
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	b, err := svc.Submit(context.Background(), SubmitRequest{Details: validDetails()})
	require.NoError(t, err)

	t.Run("unknown status rejected", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), b.BookingID, UpdateStatusRequest{Status: "approved"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown payment status rejected", func(t *testing.T) {
		ps := "refunded"
		err := svc.UpdateStatus(context.Background(), b.BookingID, UpdateStatusRequest{Status: "pending", PaymentStatus: &ps})
		assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
	})

	t.Run("unknown booking", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), "ASH0", UpdateStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), b.BookingID, UpdateStatusRequest{Status: "pending"})
		assert.NoError(t, err)
	})

	t.Run("pending to confirmed", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), b.BookingID, UpdateStatusRequest{Status: "confirmed"})
		assert.NoError(t, err)
	})

	t.Run("confirmed is terminal", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), b.BookingID, UpdateStatusRequest{Status: "cancelled"})
		assert.ErrorIs(t, err, ErrStatusFinal)
	})

	t.Run("payment status update on settled booking", func(t *testing.T) {
		ps := "paid"
		err := svc.UpdateStatus(context.Background(), b.BookingID, UpdateStatusRequest{Status: "confirmed", PaymentStatus: &ps})
		require.NoError(t, err)

		bookings, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, PaymentPaid, bookings[0].PaymentStatus)
	})
}

func TestUpdateStatusRefreshesUpdatedAt(t *testing.T) {
	svc, repo, _ := newTestService(t)

	b, err := svc.Submit(context.Background(), SubmitRequest{Details: validDetails()})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), b.BookingID, UpdateStatusRequest{Status: "confirmed"}))

	stored, err := repo.GetByID(context.Background(), b.BookingID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.After(b.UpdatedAt) || stored.UpdatedAt.Equal(b.UpdatedAt))
	assert.Equal(t, b.CreatedAt, stored.CreatedAt)
}

func TestStats(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(context.Background(), SubmitRequest{Details: validDetails()})
		require.NoError(t, err)
	}
	confirmed, err := svc.SubmitAsStaff(context.Background(), SubmitRequest{Details: validDetails()})
	require.NoError(t, err)
	_ = confirmed

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Pending)
	// Everything was created just now, well inside the current UTC day.
	assert.Equal(t, 4, stats.Today)
}
