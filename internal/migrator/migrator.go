package migrator

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"archway_backend/internal/imageprocessor"
	"archway_backend/internal/logger"
	"archway_backend/internal/models"
	"archway_backend/internal/storage"
)

// Item is one entity holding media lists the migrator may rewrite in place.
// Save persists the whole entity document once, after all its assets were
// visited.
type Item struct {
	ID    string
	Lists []*models.MediaList
	Save  func() error
}

// Source yields the entities of one kind that still hold local media. Kind
// also namespaces the remote object keys (projects/..., articles/...).
type Source struct {
	Kind string
	Load func() ([]Item, error)
}

// Report summarizes a migration run. Individual asset failures never fail
// the run; they only show up here and in the log.
type Report struct {
	Entities int // entities visited
	Migrated int // assets moved to remote storage
	Skipped  int // assets left untouched (missing file, malformed url)
	Failed   int // assets that errored (oversize, upload failure)
}

// Config bounds the migrator's outbound traffic.
type Config struct {
	MaxOutboundBytes int64         // hard per-asset ceiling after compression
	UploadTimeout    time.Duration // per-asset remote upload timeout
}

// Migrator converts local-mode media references to remote mode: it
// recompresses images, uploads them to the remote provider, rewrites the
// reference (URL and StorageID together) and deletes the local copy. Every
// asset is processed in isolation; the batch never stops for one asset.
type Migrator struct {
	local  storage.Storage
	remote storage.Storage
	proc   *imageprocessor.Processor
	cfg    Config
}

func New(local, remote storage.Storage, proc *imageprocessor.Processor, cfg Config) *Migrator {
	if cfg.UploadTimeout == 0 {
		cfg.UploadTimeout = 30 * time.Second
	}
	return &Migrator{
		local:  local,
		remote: remote,
		proc:   proc,
		cfg:    cfg,
	}
}

// Run walks every source once. It is idempotent: references already in
// remote mode are never touched, so a second run over a migrated set does
// nothing.
func (m *Migrator) Run(ctx context.Context, sources []Source) (*Report, error) {
	report := &Report{}

	for _, src := range sources {
		items, err := src.Load()
		if err != nil {
			return report, err
		}

		logger.Info("migrating entities", "kind", src.Kind, "count", len(items))

		for i := range items {
			item := &items[i]
			report.Entities++

			changed := false
			for _, list := range item.Lists {
				for j := range *list {
					switch m.migrateRef(ctx, src.Kind, &(*list)[j]) {
					case assetMigrated:
						report.Migrated++
						changed = true
					case assetSkipped:
						report.Skipped++
					case assetFailed:
						report.Failed++
					}
				}
			}

			if changed {
				if err := item.Save(); err != nil {
					logger.Error("failed to save migrated entity", "kind", src.Kind, "id", item.ID, "error", err)
					report.Failed++
					continue
				}
			}
			logger.Info("entity visited", "kind", src.Kind, "id", item.ID, "changed", changed)
		}
	}

	return report, nil
}

type assetOutcome int

const (
	assetUntouched assetOutcome = iota // already remote
	assetMigrated
	assetSkipped
	assetFailed
)

// migrateRef performs the per-asset procedure on one reference, mutating it
// in place on success. It never returns an error: failures are logged and
// reported through the outcome so the batch keeps going.
func (m *Migrator) migrateRef(ctx context.Context, kind string, ref *models.MediaRef) assetOutcome {
	if ref.Mode() == models.ModeRemote {
		return assetUntouched
	}

	localPath := ref.LocalPath()
	if localPath == "" {
		logger.Warn("local reference with unexpected url, leaving untouched", "url", ref.URL)
		return assetSkipped
	}

	rc, err := m.local.Get(ctx, localPath)
	if err != nil {
		logger.Warn("local file missing, leaving reference untouched", "path", localPath, "error", err)
		return assetSkipped
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		logger.Warn("failed to read local file, leaving reference untouched", "path", localPath, "error", err)
		return assetSkipped
	}

	out, contentType := m.prepare(ref, localPath, data)

	if int64(len(out)) > m.cfg.MaxOutboundBytes {
		logger.Error("asset exceeds outbound ceiling after compression, aborting asset",
			"path", localPath, "size", len(out), "ceiling", m.cfg.MaxOutboundBytes)
		return assetFailed
	}

	key := path.Join(kind, filepath.Base(localPath))

	uploadCtx, cancel := context.WithTimeout(ctx, m.cfg.UploadTimeout)
	err = m.remote.Save(uploadCtx, key, bytes.NewReader(out), contentType)
	cancel()
	if err != nil {
		logger.Error("remote upload failed, leaving reference in local mode", "path", localPath, "error", err)
		return assetFailed
	}

	url, err := m.remote.GetURL(ctx, key)
	if err != nil {
		logger.Error("failed to resolve remote url, leaving reference in local mode", "key", key, "error", err)
		return assetFailed
	}

	// Rewrite URL and StorageID together: the reference flips to remote
	// mode in one step.
	ref.URL = url
	ref.StorageID = key

	// Remote is authoritative now; a failed local delete is not fatal.
	if err := m.local.Delete(ctx, localPath); err != nil {
		logger.Warn("failed to delete local file after migration", "path", localPath, "error", err)
	}

	return assetMigrated
}

// prepare recompresses image assets and passes everything else through
// unchanged, returning the bytes to upload and their content type.
func (m *Migrator) prepare(ref *models.MediaRef, localPath string, data []byte) ([]byte, string) {
	if ref.Kind == models.MediaImage {
		out, contentType, err := m.proc.Compress(data)
		if err == nil {
			return out, contentType
		}
		logger.Warn("image compression failed, uploading original bytes", "path", localPath, "error", err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType
}
