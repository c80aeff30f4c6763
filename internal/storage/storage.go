// Package storage abstracts the backup volume. The core only ever needs to
// list, write, read and delete flat objects; whether those live on a mounted
// directory or in an S3 bucket is a backend concern.
package storage

import (
	"context"
	"io"

	"github.com/raoulx24/sql-archiver/internal/config"
	"github.com/raoulx24/sql-archiver/internal/errs"
)

// ObjectInfo describes one stored artifact.
type ObjectInfo struct {
	Name string
	Size int64
}

// Store is the minimal surface the orchestrator and recovery need.
type Store interface {
	// List returns every object in the backup location, foreign files
	// included; callers decide what is a backup.
	List(ctx context.Context) ([]ObjectInfo, error)

	// Put stores r under name. The object becomes visible under its final
	// name only after it is fully written.
	Put(ctx context.Context, name string, r io.Reader) (int64, error)

	// Open returns a reader for the named object.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes the named object.
	Delete(ctx context.Context, name string) error
}

// New selects a backend from config.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "local":
		return NewLocal(cfg.Root)
	case "s3":
		return NewS3(ctx, cfg.S3)
	}
	return nil, errs.Newf(errs.KindConfig, "unknown storage backend %q", cfg.Backend)
}
