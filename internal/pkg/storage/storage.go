package storage

import (
	"context"
	"io"
)

// FileStorage stores uploaded documents: leave attachments, tenant logos
// and avatars.
type FileStorage interface {
	// Upload writes the file and returns the storage key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for a stored key.
	URL(path string) string

	// Exists reports whether the key is present.
	Exists(ctx context.Context, path string) (bool, error)
}
