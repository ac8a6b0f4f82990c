package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaRefMode(t *testing.T) {
	local := MediaRef{URL: "/uploads/projects/a.jpg"}
	assert.Equal(t, ModeLocal, local.Mode())

	remote := MediaRef{URL: "https://cdn.example.com/projects/a.jpg", StorageID: "projects/a.jpg"}
	assert.Equal(t, ModeRemote, remote.Mode())

	// An absolute URL without a storage id is still local: mode never
	// depends on the URL shape.
	weird := MediaRef{URL: "https://elsewhere.example.com/a.jpg"}
	assert.Equal(t, ModeLocal, weird.Mode())
}

func TestMediaRefLocalPath(t *testing.T) {
	ref := MediaRef{URL: "/uploads/projects/a.jpg"}
	assert.Equal(t, "projects/a.jpg", ref.LocalPath())

	foreign := MediaRef{URL: "https://elsewhere.example.com/a.jpg"}
	assert.Equal(t, "", foreign.LocalPath())

	remote := MediaRef{URL: "https://cdn.example.com/a.jpg", StorageID: "a.jpg"}
	assert.Equal(t, "", remote.LocalPath())
}

func TestMediaListScanRoundTrip(t *testing.T) {
	list := MediaList{
		{ID: "1", URL: "/uploads/projects/a.jpg", Caption: "facade", Kind: MediaImage},
		{ID: "2", URL: "https://cdn.example.com/b.mp4", StorageID: "b.mp4", Kind: MediaVideo},
	}

	value, err := list.Value()
	require.NoError(t, err)

	var decoded MediaList
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, list, decoded)
}

func TestMediaListScanNil(t *testing.T) {
	var list MediaList
	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)
}

func TestMediaListFindByID(t *testing.T) {
	list := MediaList{
		{ID: "a", URL: "/uploads/x.jpg"},
		{ID: "b", URL: "/uploads/y.jpg"},
	}

	ref, idx := list.FindByID("b")
	assert.Equal(t, 1, idx)
	assert.Equal(t, "/uploads/y.jpg", ref.URL)

	_, idx = list.FindByID("missing")
	assert.Equal(t, -1, idx)
}

func TestMediaListHasLocal(t *testing.T) {
	allRemote := MediaList{
		{ID: "a", URL: "https://cdn.example.com/a.jpg", StorageID: "a.jpg"},
	}
	assert.False(t, allRemote.HasLocal())

	mixed := append(allRemote, MediaRef{ID: "b", URL: "/uploads/b.jpg"})
	assert.True(t, mixed.HasLocal())
}
