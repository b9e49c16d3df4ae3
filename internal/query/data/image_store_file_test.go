package data

import (
	"context"
	"io"
	"testing"

	"github.com/geomashup/geofeed-backend/internal/query/biz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileImageStore_PutHasGet(t *testing.T) {
	store, err := NewFileImageStore(t.TempDir(), nil)
	require.NoError(t, err)

	ctx := context.Background()

	ok, err := store.Has(ctx, "Queens,NY")
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte("fake-jpeg-bytes")
	require.NoError(t, store.Put(ctx, "Queens,NY", payload, "image/jpeg"))

	ok, err = store.Has(ctx, "Queens,NY")
	require.NoError(t, err)
	assert.True(t, ok)

	reader, contentType, size, err := store.Get(ctx, "Queens,NY")
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, int64(len(payload)), size)

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileImageStore_GetMissing(t *testing.T) {
	store, err := NewFileImageStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, _, _, err = store.Get(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, biz.ErrImageNotFound)
}

func TestFileImageStore_KeysWithUnsafeCharacters(t *testing.T) {
	store, err := NewFileImageStore(t.TempDir(), nil)
	require.NoError(t, err)

	ctx := context.Background()

	// Location keys can contain path separators and other characters that
	// must not escape the cache directory.
	keys := []string{"Rio/deJaneiro", "São.Paulo", "Queens,NY", "a..b"}
	for _, key := range keys {
		require.NoError(t, store.Put(ctx, key, []byte(key), "image/jpeg"))
	}

	for _, key := range keys {
		ok, err := store.Has(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, "key %q", key)

		reader, _, _, err := store.Get(ctx, key)
		require.NoError(t, err)
		got, err := io.ReadAll(reader)
		reader.Close()
		require.NoError(t, err)
		assert.Equal(t, []byte(key), got)
	}
}

func TestFileImageStore_OverwriteLastWins(t *testing.T) {
	store, err := NewFileImageStore(t.TempDir(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "Tokyo", []byte("first"), "image/jpeg"))
	require.NoError(t, store.Put(ctx, "Tokyo", []byte("second"), "image/jpeg"))

	reader, _, size, err := store.Get(ctx, "Tokyo")
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
	assert.Equal(t, int64(len("second")), size)
}

func TestFileImageStore_CreatesCacheDir(t *testing.T) {
	dir := t.TempDir() + "/nested/cache"
	store, err := NewFileImageStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "Tokyo", []byte("x"), "image/jpeg"))
	ok, err := store.Has(context.Background(), "Tokyo")
	require.NoError(t, err)
	assert.True(t, ok)
}
