// Package storage is the blob layer under the document store.
//
// Two drivers are available:
//   - "local"  local filesystem (default)
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once and hand the disk to whoever needs it:
//
//	if err := storage.Connect(ctx); err != nil { ... }
//	disk := storage.Default()
//	err := disk.Create(ctx, "users/ada@example.com.json", data)
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotExist is returned when a path has no object.
	ErrNotExist = errors.New("storage: object does not exist")
	// ErrExist is returned by Create when the path is already taken.
	ErrExist = errors.New("storage: object already exists")
)

// Disk is the driver interface. Paths are slash separated and relative to
// the disk root.
type Disk interface {
	// Put writes content to path, replacing whatever was there.
	Put(ctx context.Context, path string, content []byte) error

	// Create writes content only if path does not exist yet, else ErrExist.
	Create(ctx context.Context, path string, content []byte) error

	// Get returns the content at path, or ErrNotExist.
	Get(ctx context.Context, path string) ([]byte, error)

	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path, or returns ErrNotExist.
	Delete(ctx context.Context, path string) error

	// Files lists the base names of the objects directly inside directory.
	// A missing directory yields an empty list.
	Files(ctx context.Context, directory string) ([]string, error)
}
