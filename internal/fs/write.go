// Package fs provides resilient filesystem primitives for the local storage
// backend. Writes go through a temp file and an atomic rename so a backup is
// either fully present under its final name or absent.
package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// WriteAtomic streams r into path. The data lands in a dot-prefixed temp
// file next to the target first; only a successful write, sync and rename
// makes it visible under its final name.
func WriteAtomic(ctx context.Context, path string, r io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, ".tmp-"+filepath.Base(path))

	n, err := writeOnce(tmp, r)
	if err != nil {
		_ = os.Remove(tmp)
		return 0, errors.Wrapf(err, "writing %s", tmp)
	}

	if err := Rename(ctx, tmp, path); err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}
	return n, nil
}

func writeOnce(path string, r io.Reader) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, r)
	if err != nil {
		_ = out.Close()
		return 0, err
	}

	if err := out.Sync(); err != nil {
		_ = out.Close()
		return 0, err
	}
	return n, out.Close()
}

// Rename wraps os.Rename with retry.
func Rename(ctx context.Context, oldPath, newPath string) error {
	return retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}

// Remove wraps os.Remove with retry.
func Remove(ctx context.Context, path string) error {
	return retry(ctx, "remove", func() error {
		return os.Remove(path)
	})
}
