package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeConformance exercises the BlobStore contract shared by all backends.
func storeConformance(t *testing.T, store BlobStore) {
	t.Helper()

	ctx := context.Background()

	t.Run("OpenMissing", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutOpenRoundTrip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "dir/blob.bin", []byte("hello world")))

		b, err := store.Open(ctx, "dir/blob.bin")
		require.NoError(t, err)
		defer func() { _ = b.Close() }()

		assert.Equal(t, int64(11), b.Size())

		p := make([]byte, 5)
		n, err := b.ReadAt(ctx, p, 6)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "world", string(p))
	})

	t.Run("ReadAtPastEnd", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "short.bin", []byte("abc")))

		b, err := store.Open(ctx, "short.bin")
		require.NoError(t, err)
		defer func() { _ = b.Close() }()

		_, err = b.ReadAt(ctx, make([]byte, 1), 10)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "versioned", []byte("v1")))
		require.NoError(t, store.Put(ctx, "versioned", []byte("v2-longer")))

		data, err := ReadAll(ctx, store, "versioned")
		require.NoError(t, err)
		assert.Equal(t, "v2-longer", string(data))
	})

	t.Run("CreateStreams", func(t *testing.T) {
		w, err := store.Create(ctx, "streamed")
		require.NoError(t, err)

		_, err = w.Write([]byte("part1 "))
		require.NoError(t, err)
		_, err = w.Write([]byte("part2"))
		require.NoError(t, err)
		require.NoError(t, w.Sync())
		require.NoError(t, w.Close())

		data, err := ReadAll(ctx, store, "streamed")
		require.NoError(t, err)
		assert.Equal(t, "part1 part2", string(data))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "doomed", []byte("x")))
		require.NoError(t, store.Delete(ctx, "doomed"))

		_, err := store.Open(ctx, "doomed")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "list/b", []byte("2")))
		require.NoError(t, store.Put(ctx, "list/a", []byte("1")))
		require.NoError(t, store.Put(ctx, "other/c", []byte("3")))

		names, err := store.List(ctx, "list/")
		require.NoError(t, err)
		assert.Equal(t, []string{"list/a", "list/b"}, names)
	})
}

func TestMemoryStore(t *testing.T) {
	storeConformance(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	storeConformance(t, NewLocalStore(t.TempDir()))
}

func TestMemoryStoreOpenIsStable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "blob", []byte("before")))

	b, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	// Overwriting after Open must not affect the open handle.
	require.NoError(t, store.Put(ctx, "blob", []byte("after!")))

	p := make([]byte, 6)
	_, err = b.ReadAt(ctx, p, 0)
	require.NoError(t, err)
	assert.Equal(t, "before", string(p))
}

func TestLocalStoreListMissingRoot(t *testing.T) {
	store := NewLocalStore(t.TempDir() + "/does-not-exist")

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
