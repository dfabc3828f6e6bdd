// Package blob abstracts attachment storage behind a small capability
// interface so the application can run against S3-compatible object storage
// in production and a plain directory in development and tests.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned by Delete when no blob exists at the key.
var ErrBlobNotFound = errors.New("blob not found")

type Store interface {
	// Put stores content under key, overwriting any previous blob.
	Put(ctx context.Context, key string, content io.Reader, size int64, contentType string) error
	// URL resolves key to a retrievable location.
	URL(key string) string
	// Delete removes the blob at key, ErrBlobNotFound when absent.
	Delete(ctx context.Context, key string) error
}
