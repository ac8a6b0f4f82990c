package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"archway_backend/internal/models"
	"archway_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory Storage for tests.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
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
	return models.LocalURLPrefix + path, nil
}

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

type filePart struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func buildForm(t *testing.T, parts ...filePart) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.name))
		h.Set("Content-Type", p.contentType)
		fw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = fw.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

func TestIngestStoresFilesWithCaptions(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	form := buildForm(t,
		filePart{field: "images", name: "one.png", contentType: "image/png", content: []byte("first")},
		filePart{field: "images", name: "two.jpg", contentType: "image/jpeg", content: []byte("second")},
	)

	results := ing.Ingest(context.Background(), form, "projects", ProjectForm.Fields[0], []string{"facade", "interior"})
	refs, err := Collect(context.Background(), results)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, "facade", refs[0].Caption)
	assert.Equal(t, "interior", refs[1].Caption)
	assert.Equal(t, models.MediaImage, refs[0].Kind)
	assert.NotEqual(t, refs[0].URL, refs[1].URL)
	assert.NotEqual(t, refs[0].ID, refs[1].ID)

	for _, ref := range refs {
		assert.True(t, strings.HasPrefix(ref.URL, "/uploads/projects/"), ref.URL)
		assert.Equal(t, models.ModeLocal, ref.Mode())
	}
	assert.Equal(t, 2, store.count())
}

func TestIngestMissingCaptionsDefaultEmpty(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	form := buildForm(t,
		filePart{field: "images", name: "one.png", contentType: "image/png", content: []byte("x")},
		filePart{field: "images", name: "two.png", contentType: "image/png", content: []byte("y")},
	)

	results := ing.Ingest(context.Background(), form, "projects", ProjectForm.Fields[0], []string{"only first"})
	refs, err := Collect(context.Background(), results)
	require.NoError(t, err)
	assert.Equal(t, "only first", refs[0].Caption)
	assert.Equal(t, "", refs[1].Caption)
}

func TestIngestRejectsDisallowedExtension(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	form := buildForm(t,
		filePart{field: "images", name: "payload.exe", contentType: "image/png", content: []byte("mz")},
	)

	results := ing.Ingest(context.Background(), form, "projects", ProjectForm.Fields[0], nil)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), ".exe")
	assert.ErrorIs(t, results[0].Err, apperrors.ErrInvalidFileType)
	assert.Equal(t, 0, store.count(), "rejected file must leave no bytes behind")
}

func TestIngestRejectsMismatchedContentType(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	form := buildForm(t,
		filePart{field: "images", name: "ok.png", contentType: "application/octet-stream", content: []byte("x")},
	)

	results := ing.Ingest(context.Background(), form, "projects", ProjectForm.Fields[0], nil)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Equal(t, 0, store.count())
}

func TestIngestRejectsOversizeFile(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 4)

	form := buildForm(t,
		filePart{field: "images", name: "big.png", contentType: "image/png", content: []byte("way too big")},
	)

	results := ing.Ingest(context.Background(), form, "projects", ProjectForm.Fields[0], nil)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "maximum size")
	assert.ErrorIs(t, results[0].Err, apperrors.ErrFileTooLarge)
	assert.Equal(t, 0, store.count())
}

func TestIngestEnforcesMaxCount(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	field := Field{Name: "videos", Kind: models.MediaVideo, MaxCount: 1}
	form := buildForm(t,
		filePart{field: "videos", name: "a.mp4", contentType: "video/mp4", content: []byte("a")},
		filePart{field: "videos", name: "b.mp4", contentType: "video/mp4", content: []byte("b")},
	)

	results := ing.Ingest(context.Background(), form, "projects", field, nil)
	require.Len(t, results, 2)
	for _, res := range results {
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "at most 1")
	}
	assert.Equal(t, 0, store.count())
}

func TestIngestConcurrentUploadsNeverCollide(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	const workers = 16
	forms := make([]*multipart.Form, workers)
	for i := range forms {
		forms[i] = buildForm(t,
			filePart{field: "images", name: "same-name.png", contentType: "image/png", content: []byte{byte(i)}},
		)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(form *multipart.Form) {
			defer wg.Done()
			results := ing.Ingest(context.Background(), form, "projects", ProjectForm.Fields[0], nil)
			assert.Len(t, results, 1)
			assert.NoError(t, results[0].Err)
		}(forms[i])
	}
	wg.Wait()

	// Identical original filenames still land on distinct storage paths.
	assert.Equal(t, workers, store.count())
}

func TestIngestNilFormYieldsNothing(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	// Non-multipart requests reach the ingestor with a nil form.
	results := ing.Ingest(context.Background(), nil, "projects", ProjectForm.Fields[0], nil)
	assert.Empty(t, results)
	assert.Equal(t, 0, store.count())
}

func TestIngestAbsentFieldYieldsNothing(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	form := buildForm(t)
	results := ing.Ingest(context.Background(), form, "projects", ProjectForm.Fields[0], nil)
	assert.Empty(t, results)
}

func TestCollectReturnsFirstError(t *testing.T) {
	store := newMemStorage()
	ing := New(store, 1<<20)

	form := buildForm(t,
		filePart{field: "images", name: "good.png", contentType: "image/png", content: []byte("ok")},
		filePart{field: "images", name: "bad.exe", contentType: "image/png", content: []byte("no")},
	)

	results := ing.Ingest(context.Background(), form, "projects", ProjectForm.Fields[0], nil)
	refs, err := Collect(context.Background(), results)
	require.Error(t, err)
	assert.Nil(t, refs)
	// The first file was stored before the second failed validation.
	assert.Equal(t, 1, store.count())
}
