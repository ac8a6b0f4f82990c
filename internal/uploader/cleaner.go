package uploader

import (
	"context"

	"archway_backend/internal/logger"
	"archway_backend/internal/models"
	"archway_backend/internal/storage"
)

// Cleaner releases the files behind media references. Deletion is
// best-effort: failures are logged, never surfaced, since the owning record
// is already gone by the time a reference is cleaned.
type Cleaner struct {
	local  storage.Storage
	remote storage.Storage // nil when no remote provider is configured
}

func NewCleaner(local, remote storage.Storage) *Cleaner {
	return &Cleaner{local: local, remote: remote}
}

// Remove deletes the underlying file of every reference, local or remote.
func (c *Cleaner) Remove(ctx context.Context, refs ...models.MediaRef) {
	for _, ref := range refs {
		switch ref.Mode() {
		case models.ModeLocal:
			p := ref.LocalPath()
			if p == "" {
				logger.CtxWarn(ctx, "local media reference with unexpected url, skipping delete", "url", ref.URL)
				continue
			}
			if err := c.local.Delete(ctx, p); err != nil {
				logger.CtxWithError(ctx, "failed to delete local file", err, "path", p)
			}
		case models.ModeRemote:
			if c.remote == nil {
				logger.CtxWarn(ctx, "no remote storage configured, cannot delete remote file", "storage_id", ref.StorageID)
				continue
			}
			if err := c.remote.Delete(ctx, ref.StorageID); err != nil {
				logger.CtxWithError(ctx, "failed to delete remote file", err, "storage_id", ref.StorageID)
			}
		}
	}
}

// RemoveLists deletes every file referenced by the given media lists.
func (c *Cleaner) RemoveLists(ctx context.Context, lists ...*models.MediaList) {
	for _, list := range lists {
		if list == nil {
			continue
		}
		c.Remove(ctx, *list...)
	}
}
