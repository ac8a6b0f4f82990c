package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveGetDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "projects/a.jpg", strings.NewReader("payload"), "image/jpeg"))

	exists, err := store.Exists(ctx, "projects/a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Get(ctx, "projects/a.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Delete(ctx, "projects/a.jpg"))
	exists, err = store.Exists(ctx, "projects/a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageDeleteMissingIsNoError(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "projects/never-existed.jpg"))
}

func TestLocalStorageGetURL(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	url, err := store.GetURL(context.Background(), "projects/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/projects/a.jpg", url)
}
