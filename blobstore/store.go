package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for reading and writing immutable data blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Put writes a blob atomically.
	Put(ctx context.Context, name string, data []byte) error

	// Create creates a new blob for streaming writes.
	// The blob becomes visible when the returned handle is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)

	// Delete removes a blob.
	Delete(ctx context.Context, name string) error

	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	// ReadAt reads len(p) bytes starting at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)

	// Size returns the size of the blob in bytes.
	Size() int64

	io.Closer
}

// WritableBlob is a write-once handle to a new blob.
type WritableBlob interface {
	io.Writer

	// Sync flushes buffered data to stable storage where the backend
	// supports it; a no-op for streaming backends.
	Sync() error

	io.Closer
}

// ReadAll reads the full contents of the named blob.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	data := make([]byte, b.Size())
	if _, err := b.ReadAt(ctx, data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}
