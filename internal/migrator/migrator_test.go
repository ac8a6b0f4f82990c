package migrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"archway_backend/internal/imageprocessor"
	"archway_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	mu       sync.Mutex
	files    map[string][]byte
	urlBase  string
	failSave bool
}

func newMemStorage(urlBase string) *memStorage {
	return &memStorage{files: map[string][]byte{}, urlBase: urlBase}
}

func (m *memStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	if m.failSave {
		return errors.New("save failed")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

func (m *memStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *memStorage) Exists(ctx context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *memStorage) GetURL(ctx context.Context, path string) (string, error) {
	return m.urlBase + path, nil
}

func (m *memStorage) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestMigrator(local, remote *memStorage, ceiling int64) *Migrator {
	return New(local, remote, imageprocessor.NewProcessor(64, 80), Config{
		MaxOutboundBytes: ceiling,
		UploadTimeout:    5 * time.Second,
	})
}

// singleSource wraps one entity so tests can observe Save calls.
func singleSource(kind string, lists []*models.MediaList, saves *int) []Source {
	return []Source{{
		Kind: kind,
		Load: func() ([]Item, error) {
			return []Item{{
				ID:    "entity-1",
				Lists: lists,
				Save:  func() error { *saves++; return nil },
			}}, nil
		},
	}}
}

func TestRunMigratesLocalRefs(t *testing.T) {
	local := newMemStorage(models.LocalURLPrefix)
	remote := newMemStorage("https://cdn.test/")
	ctx := context.Background()

	require.NoError(t, local.Save(ctx, "projects/a.png", bytes.NewReader(encodePNG(t, 8, 8)), "image/png"))

	images := models.MediaList{{ID: "1", URL: "/uploads/projects/a.png", Kind: models.MediaImage}}
	saves := 0

	m := newTestMigrator(local, remote, 1<<20)
	report, err := m.Run(ctx, singleSource("projects", []*models.MediaList{&images}, &saves))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Entities)
	assert.Equal(t, 1, report.Migrated)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 1, saves)

	ref := images[0]
	assert.Equal(t, models.ModeRemote, ref.Mode())
	assert.Equal(t, "projects/a.png", ref.StorageID)
	assert.Equal(t, "https://cdn.test/projects/a.png", ref.URL)
	assert.True(t, remote.has("projects/a.png"))
	assert.False(t, local.has("projects/a.png"), "local copy is deleted after migration")
}

func TestRunIsIdempotent(t *testing.T) {
	local := newMemStorage(models.LocalURLPrefix)
	remote := newMemStorage("https://cdn.test/")
	ctx := context.Background()

	require.NoError(t, local.Save(ctx, "projects/a.png", bytes.NewReader(encodePNG(t, 8, 8)), "image/png"))
	images := models.MediaList{{ID: "1", URL: "/uploads/projects/a.png", Kind: models.MediaImage}}
	saves := 0
	m := newTestMigrator(local, remote, 1<<20)

	_, err := m.Run(ctx, singleSource("projects", []*models.MediaList{&images}, &saves))
	require.NoError(t, err)
	require.Equal(t, 1, saves)
	migratedURL := images[0].URL

	report, err := m.Run(ctx, singleSource("projects", []*models.MediaList{&images}, &saves))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Migrated)
	assert.Equal(t, 1, saves, "no second save for an already migrated entity")
	assert.Equal(t, migratedURL, images[0].URL)
}

func TestRunSkipsMissingLocalFile(t *testing.T) {
	local := newMemStorage(models.LocalURLPrefix)
	remote := newMemStorage("https://cdn.test/")

	images := models.MediaList{{ID: "1", URL: "/uploads/projects/gone.png", Kind: models.MediaImage}}
	saves := 0
	m := newTestMigrator(local, remote, 1<<20)

	report, err := m.Run(context.Background(), singleSource("projects", []*models.MediaList{&images}, &saves))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Migrated)
	assert.Equal(t, 0, saves)
	assert.Equal(t, models.ModeLocal, images[0].Mode())
	assert.Equal(t, "/uploads/projects/gone.png", images[0].URL)
}

func TestRunFailedUploadLeavesRefLocal(t *testing.T) {
	local := newMemStorage(models.LocalURLPrefix)
	remote := newMemStorage("https://cdn.test/")
	remote.failSave = true
	ctx := context.Background()

	require.NoError(t, local.Save(ctx, "projects/a.png", bytes.NewReader(encodePNG(t, 8, 8)), "image/png"))
	images := models.MediaList{{ID: "1", URL: "/uploads/projects/a.png", Kind: models.MediaImage}}
	saves := 0
	m := newTestMigrator(local, remote, 1<<20)

	report, err := m.Run(ctx, singleSource("projects", []*models.MediaList{&images}, &saves))
	require.NoError(t, err, "one bad asset never fails the batch")

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, models.ModeLocal, images[0].Mode())
	assert.True(t, local.has("projects/a.png"), "local file stays when upload fails")
	assert.Equal(t, 0, saves)
}

func TestRunRespectsOutboundCeiling(t *testing.T) {
	local := newMemStorage(models.LocalURLPrefix)
	remote := newMemStorage("https://cdn.test/")
	ctx := context.Background()

	require.NoError(t, local.Save(ctx, "projects/a.png", bytes.NewReader(encodePNG(t, 8, 8)), "image/png"))
	images := models.MediaList{{ID: "1", URL: "/uploads/projects/a.png", Kind: models.MediaImage}}
	saves := 0
	m := newTestMigrator(local, remote, 8) // nothing fits under 8 bytes

	report, err := m.Run(ctx, singleSource("projects", []*models.MediaList{&images}, &saves))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, models.ModeLocal, images[0].Mode())
	assert.False(t, remote.has("projects/a.png"))
}

func TestRunFailingAssetLeavesRemoteSiblingUntouched(t *testing.T) {
	local := newMemStorage(models.LocalURLPrefix)
	remote := newMemStorage("https://cdn.test/")
	ctx := context.Background()

	require.NoError(t, local.Save(ctx, "projects/big.png", bytes.NewReader(encodePNG(t, 8, 8)), "image/png"))
	migrated := models.MediaRef{
		ID:        "1",
		URL:       "https://cdn.test/projects/done.png",
		Caption:   "done",
		StorageID: "projects/done.png",
		Kind:      models.MediaImage,
	}
	images := models.MediaList{
		migrated,
		{ID: "2", URL: "/uploads/projects/big.png", Kind: models.MediaImage},
	}
	saves := 0
	m := newTestMigrator(local, remote, 8) // forces the local asset over the ceiling

	report, err := m.Run(ctx, singleSource("projects", []*models.MediaList{&images}, &saves))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.Migrated)
	assert.Equal(t, 0, saves)
	assert.Equal(t, migrated, images[0], "already migrated reference stays untouched")
	assert.Equal(t, models.ModeLocal, images[1].Mode())
	assert.Equal(t, "/uploads/projects/big.png", images[1].URL)
	assert.True(t, local.has("projects/big.png"))
}

func TestRunMigratesPartialEntity(t *testing.T) {
	local := newMemStorage(models.LocalURLPrefix)
	remote := newMemStorage("https://cdn.test/")
	ctx := context.Background()

	// Only the first asset has a file behind it.
	require.NoError(t, local.Save(ctx, "projects/a.png", bytes.NewReader(encodePNG(t, 8, 8)), "image/png"))
	images := models.MediaList{
		{ID: "1", URL: "/uploads/projects/a.png", Kind: models.MediaImage},
		{ID: "2", URL: "/uploads/projects/gone.png", Kind: models.MediaImage},
	}
	saves := 0
	m := newTestMigrator(local, remote, 1<<20)

	report, err := m.Run(ctx, singleSource("projects", []*models.MediaList{&images}, &saves))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Migrated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, saves, "entity is saved once even when only some assets moved")
	assert.Equal(t, models.ModeRemote, images[0].Mode())
	assert.Equal(t, models.ModeLocal, images[1].Mode())
}
