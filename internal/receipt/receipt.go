package receipt

import (
	"context"
	"net/http"

	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrTooLarge        = apperror.New(http.StatusRequestEntityTooLarge, "receipt exceeds the maximum allowed size")
	ErrUnsupportedType = apperror.New(http.StatusBadRequest, "receipt must be an image")
)

// Upload is a payment-receipt payload to be stored.
type Upload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Store persists receipt images and hands back a stable, resolvable reference.
// Bookings never need to update, list or delete receipts, so this is the
// whole contract.
type Store interface {
	Save(ctx context.Context, up Upload) (string, error)
}
