package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations. Both the local
// upload root and the remote object store implement it; instances are
// constructed at startup and injected, never reached through globals.
type Storage interface {
	// Save stores a file at the given path as a single create.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a file from the given path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path. Deleting a missing file is
	// not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the file.
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration for both backends.
type Config struct {
	BasePath  string // local upload root
	BaseURL   string // public URL base for remote files
	Bucket    string // R2 bucket
	AccessKey string
	SecretKey string
	Endpoint  string // R2 endpoint
}
