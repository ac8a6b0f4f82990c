package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// LocalURLPrefix is the path under which locally stored files are served.
const LocalURLPrefix = "/uploads/"

// MediaKind distinguishes the file class of a media reference.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// StorageMode is where a media reference's file currently lives. The mode is
// derived from the presence of StorageID, never from the URL shape, so a
// malformed absolute URL cannot be misread as local.
type StorageMode int

const (
	ModeLocal StorageMode = iota
	ModeRemote
)

// MediaRef points at one uploaded file owned by an entity. For local files
// URL is a /uploads/... path and StorageID is empty; after migration URL is
// the provider's public URL and StorageID the provider object key needed to
// delete it. The migrator rewrites both together.
type MediaRef struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	StorageID string    `json:"storage_id,omitempty"`
	Kind      MediaKind `json:"kind"`
}

// Mode reports whether the reference is in local or remote storage.
func (m MediaRef) Mode() StorageMode {
	if m.StorageID != "" {
		return ModeRemote
	}
	return ModeLocal
}

// LocalPath returns the storage-relative path of a local-mode reference,
// or "" when the reference is remote or its URL is not under /uploads/.
func (m MediaRef) LocalPath() string {
	if m.Mode() != ModeLocal {
		return ""
	}
	if !strings.HasPrefix(m.URL, LocalURLPrefix) {
		return ""
	}
	return strings.TrimPrefix(m.URL, LocalURLPrefix)
}

// MediaList is an ordered sequence of media references, persisted as a JSONB
// column. Order is meaningful: the first image is the cover.
type MediaList []MediaRef

// Value implements driver.Valuer.
func (l MediaList) Value() (driver.Value, error) {
	if l == nil {
		l = MediaList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *MediaList) Scan(value interface{}) error {
	if value == nil {
		*l = MediaList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for MediaList: %T", value)
	}

	if len(data) == 0 {
		*l = MediaList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// GormDataType tells gorm which column type to create.
func (MediaList) GormDataType() string {
	return "jsonb"
}

// FindByID returns the reference with the given id and its index, or -1.
func (l MediaList) FindByID(id string) (MediaRef, int) {
	for i, ref := range l {
		if ref.ID == id {
			return ref, i
		}
	}
	return MediaRef{}, -1
}

// HasLocal reports whether any reference in the list is in local mode.
func (l MediaList) HasLocal() bool {
	for _, ref := range l {
		if ref.Mode() == ModeLocal {
			return true
		}
	}
	return false
}
