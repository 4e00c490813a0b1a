// Package storage provides the blob backends the file-backed user store
// persists its document collection through. Documents are small, so the
// interface deals in whole byte slices rather than streams.
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get when the object has never been written.
// The store treats it as an uninitialized collection, not a failure.
var ErrNotExist = errors.New("object does not exist")

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	// EnsureBucket ensures the backing bucket (or directory) exists.
	EnsureBucket(ctx context.Context) error

	// Put writes the object, overwriting any prior content.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get reads the whole object. Missing objects yield ErrNotExist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Bucket returns the configured bucket (or directory) name.
	Bucket() string
}
