package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no blob is stored under a key.
var ErrNotFound = errors.New("file not found")

// FileStorage is an opaque blob store addressed by key.
type FileStorage interface {
	// Upload stores file under key and returns the key it was stored as
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// Download opens the blob; the caller closes it
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}
