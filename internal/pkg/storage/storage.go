package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage backends.
type Storage interface {
	// Save writes content to the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
}
