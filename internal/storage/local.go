package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/raoulx24/sql-archiver/internal/errs"
	"github.com/raoulx24/sql-archiver/internal/fs"
)

// Local stores backups as flat files below a mounted directory.
type Local struct {
	root string
}

// NewLocal fails when the root does not exist: the volume is expected to
// have been mounted by the environment, a missing mount must never be
// silently replaced by a directory on the container filesystem.
func NewLocal(root string) (*Local, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, errs.Wrapf(errs.KindConfig, err, "backup root %s is not available", root)
	}
	if !st.IsDir() {
		return nil, errs.Newf(errs.KindConfig, "backup root %s is not a directory", root)
	}
	return &Local{root: root}, nil
}

func (l *Local) List(ctx context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup root %s", l.root)
	}

	var objects []ObjectInfo
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			// Entry vanished between ReadDir and Stat.
			continue
		}
		objects = append(objects, ObjectInfo{Name: ent.Name(), Size: info.Size()})
	}
	return objects, nil
}

func (l *Local) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	return fs.WriteAtomic(ctx, filepath.Join(l.root, name), r)
}

func (l *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrapf(errs.KindNotFound, err, "backup %s not found", name)
		}
		return nil, errors.Wrapf(err, "opening backup %s", name)
	}
	return f, nil
}

func (l *Local) Delete(ctx context.Context, name string) error {
	if err := fs.Remove(ctx, filepath.Join(l.root, name)); err != nil {
		return errs.Wrapf(errs.KindDelete, err, "deleting backup %s", name)
	}
	return nil
}
