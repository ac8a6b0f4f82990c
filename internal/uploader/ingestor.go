package uploader

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"archway_backend/internal/logger"
	"archway_backend/internal/models"
	"archway_backend/internal/storage"
	"archway_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Field declares one expected multipart file field: its name, the media kind
// it accepts and how many files it may carry. Every entity kind enumerates
// its fields up front instead of guessing cardinality from the request.
type Field struct {
	Name     string
	Kind     models.MediaKind
	MaxCount int
}

// FormSpec is the full upload shape for one entity kind. Folder namespaces
// stored files (e.g. projects/...).
type FormSpec struct {
	Folder string
	Fields []Field
}

var (
	ProjectForm = FormSpec{
		Folder: "projects",
		Fields: []Field{
			{Name: "images", Kind: models.MediaImage, MaxCount: 20},
			{Name: "videos", Kind: models.MediaVideo, MaxCount: 5},
		},
	}
	ArticleForm = FormSpec{
		Folder: "articles",
		Fields: []Field{
			{Name: "images", Kind: models.MediaImage, MaxCount: 10},
		},
	}
	BlogForm = FormSpec{
		Folder: "blog",
		Fields: []Field{
			{Name: "images", Kind: models.MediaImage, MaxCount: 10},
			{Name: "videos", Kind: models.MediaVideo, MaxCount: 3},
		},
	}
)

// Extension and declared-MIME allow-lists per media kind. A file must pass
// both checks to be accepted.
var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	videoExts = map[string]bool{".mp4": true, ".webm": true}

	imageMIMEs = map[string]bool{"image/jpeg": true, "image/png": true, "image/webp": true}
	videoMIMEs = map[string]bool{"video/mp4": true, "video/webm": true}
)

// Result is the outcome of ingesting a single file: either a media reference
// or the error that stopped it. Errors never imply a partial write for that
// file.
type Result struct {
	Ref models.MediaRef
	Err error
}

// Ingestor validates multipart files and stores them in local storage,
// producing media references.
type Ingestor struct {
	store   storage.Storage
	maxSize int64
}

// New creates an Ingestor writing into store with the given per-file size
// ceiling in bytes.
func New(store storage.Storage, maxSize int64) *Ingestor {
	return &Ingestor{store: store, maxSize: maxSize}
}

// Ingest validates and stores every file submitted under field within form,
// zipping captions positionally: captions[i] belongs to file i, missing
// captions default to "". One Result per file, in submission order. Files
// already stored before a later failure are NOT rolled back; callers decide
// how to surface the partial batch.
func (ing *Ingestor) Ingest(ctx context.Context, form *multipart.Form, folder string, field Field, captions []string) []Result {
	// A request without a multipart body carries no files.
	if form == nil {
		return nil
	}

	files := form.File[field.Name]
	if len(files) == 0 {
		return nil
	}

	results := make([]Result, 0, len(files))

	if field.MaxCount > 0 && len(files) > field.MaxCount {
		err := apperrors.NewBadRequestError(fmt.Sprintf(
			"field %q accepts at most %d files, got %d", field.Name, field.MaxCount, len(files)))
		for range files {
			results = append(results, Result{Err: err})
		}
		return results
	}

	for i, fh := range files {
		caption := ""
		if i < len(captions) {
			caption = captions[i]
		}

		ref, err := ing.ingestOne(ctx, fh, folder, field.Kind, caption)
		results = append(results, Result{Ref: ref, Err: err})
	}

	return results
}

// ingestOne validates a single file and writes it to storage. Validation
// happens entirely before the write, so a rejected file leaves no bytes
// behind.
func (ing *Ingestor) ingestOne(ctx context.Context, fh *multipart.FileHeader, folder string, kind models.MediaKind, caption string) (models.MediaRef, error) {
	if err := ing.validate(fh, kind); err != nil {
		return models.MediaRef{}, err
	}

	src, err := fh.Open()
	if err != nil {
		return models.MediaRef{}, apperrors.StorageError(err)
	}
	defer src.Close()

	name := generateFilename(fh.Filename)
	storagePath := path.Join(folder, name)

	contentType := fh.Header.Get("Content-Type")
	if err := ing.store.Save(ctx, storagePath, src, contentType); err != nil {
		return models.MediaRef{}, apperrors.StorageError(err)
	}

	url, err := ing.store.GetURL(ctx, storagePath)
	if err != nil {
		url = models.LocalURLPrefix + storagePath
	}

	return models.MediaRef{
		ID:      uuid.NewString(),
		URL:     url,
		Caption: caption,
		Kind:    kind,
	}, nil
}

func (ing *Ingestor) validate(fh *multipart.FileHeader, kind models.MediaKind) error {
	if fh.Size > ing.maxSize {
		return apperrors.Wrap(apperrors.ErrFileTooLarge, apperrors.CodeFileTooLarge, fmt.Sprintf(
			"file %q exceeds the maximum size of %d bytes", fh.Filename, ing.maxSize), http.StatusBadRequest)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	declared := strings.ToLower(strings.TrimSpace(strings.Split(fh.Header.Get("Content-Type"), ";")[0]))

	var extOK, mimeOK bool
	switch kind {
	case models.MediaImage:
		extOK, mimeOK = imageExts[ext], imageMIMEs[declared]
	case models.MediaVideo:
		extOK, mimeOK = videoExts[ext], videoMIMEs[declared]
	}

	if !extOK {
		return apperrors.Wrap(apperrors.ErrInvalidFileType, apperrors.CodeInvalidFileType, fmt.Sprintf(
			"file extension %q is not allowed for %s uploads", ext, kind), http.StatusBadRequest)
	}
	if !mimeOK {
		return apperrors.Wrap(apperrors.ErrInvalidFileType, apperrors.CodeInvalidFileType, fmt.Sprintf(
			"content type %q is not allowed for %s uploads", declared, kind), http.StatusBadRequest)
	}
	return nil
}

// Collect returns every reference when the whole batch succeeded, or the
// first error otherwise. Files stored before the failing one stay on disk;
// they are logged so a later cleanup can find them.
func Collect(ctx context.Context, results []Result) ([]models.MediaRef, error) {
	refs := make([]models.MediaRef, 0, len(results))
	for i, res := range results {
		if res.Err != nil {
			if len(refs) > 0 {
				urls := make([]string, 0, len(refs))
				for _, r := range refs {
					urls = append(urls, r.URL)
				}
				logger.CtxWarn(ctx, "partial upload batch: earlier files remain on disk",
					"stored", len(refs),
					"failed_index", i,
					"urls", strings.Join(urls, ","),
				)
			}
			return nil, res.Err
		}
		refs = append(refs, res.Ref)
	}
	return refs, nil
}

// generateFilename builds a collision-resistant name preserving the original
// extension: <unixnano>_<8 random hex chars><ext>.
func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), randomHex(8), ext)
}

func randomHex(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}
