package storage

import (
	"context"
	"io"
	"time"
)

// Storage abstracts the inspection-photo backends: a local-filesystem mock
// for development and Firebase Cloud Storage in production.
type Storage interface {
	// GeneratePresignedUploadURL returns a URL the browser can PUT the photo
	// to, valid for expiresIn.
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL returns a URL the photo can be fetched
	// from, valid for expiresIn.
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists reports whether the object exists and its size.
	FileExists(ctx context.Context, key string) (bool, int64, error)

	// DeleteFile removes the object.
	DeleteFile(ctx context.Context, key string) error

	// SaveFile and ReadFile back the mock upload/download HTTP handlers.
	// The Firebase backend does not implement them.
	SaveFile(key string, reader io.Reader) error
	ReadFile(key string) (io.ReadCloser, error)
}
