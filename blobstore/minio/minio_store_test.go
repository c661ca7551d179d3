package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/blobstore"
)

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-recgo"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	// Put and Open
	data := []byte("hello recgo blobstore")
	require.NoError(t, store.Put(ctx, "features.col", data))

	blob, err := store.Open(ctx, "features.col")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	// Ranged read
	part := make([]byte, 5)
	n, err = blob.ReadAt(ctx, part, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	assert.Equal(t, "recgo", string(part))
	require.NoError(t, blob.Close())

	// List
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "features.col")

	// Delete and error mapping
	require.NoError(t, store.Delete(ctx, "features.col"))

	_, err = store.Open(ctx, "features.col")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	// Create (streaming)
	wb, err := store.Create(ctx, "manifest.json")
	require.NoError(t, err)
	_, err = wb.Write([]byte("streamed data"))
	require.NoError(t, err)
	require.NoError(t, wb.Sync())
	require.NoError(t, wb.Close())

	blob2, err := store.Open(ctx, "manifest.json")
	require.NoError(t, err)
	assert.Equal(t, int64(13), blob2.Size())
	require.NoError(t, blob2.Close())

	// Cleanup
	_ = store.Delete(ctx, "manifest.json")
}
