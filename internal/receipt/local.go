package receipt

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/storage"
)

// LocalStore keeps receipts on a storage backend and serves them under
// <baseURL>/files/receipts/. Originals are stored as uploaded; a JPEG
// thumbnail is written beside each one for the admin dashboard.
type LocalStore struct {
	storage  storage.Storage
	imgProc  *storage.ImageProcessor
	baseURL  string
	maxBytes int64
	logger   *logrus.Logger
}

// NewLocalStore creates a receipt store backed by the given storage.
func NewLocalStore(store storage.Storage, baseURL string, maxBytes int64, logger *logrus.Logger) *LocalStore {
	return &LocalStore{
		storage:  store,
		imgProc:  storage.NewImageProcessor(),
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Save implements Store. The size cap is enforced before any disk operation.
func (s *LocalStore) Save(ctx context.Context, up Upload) (string, error) {
	if s.maxBytes > 0 && int64(len(up.Content)) > s.maxBytes {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return "", ErrUnsupportedType
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if ext == "" {
		if exts, err := mime.ExtensionsByType(up.ContentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	id := uuid.New().String()
	shard := id[:2]
	path := fmt.Sprintf("%s/%s%s", shard, id, ext)

	if err := s.storage.Save(ctx, path, bytes.NewReader(up.Content)); err != nil {
		return "", fmt.Errorf("failed to save receipt: %w", err)
	}

	// Thumbnail generation is best-effort; the original is what counts.
	if thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(up.Content), 200, 200); err == nil {
		thumbPath := fmt.Sprintf("%s/%s_thumb.jpg", shard, id)
		if err := s.storage.Save(ctx, thumbPath, thumb); err != nil {
			s.logger.WithError(err).Warn("failed to save receipt thumbnail")
		}
	} else {
		s.logger.WithError(err).Warn("failed to generate receipt thumbnail")
	}

	return s.baseURL + "/files/receipts/" + path, nil
}
