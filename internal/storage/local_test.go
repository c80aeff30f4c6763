package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/sql-archiver/internal/errs"
)

func TestNewLocalRequiresExistingRoot(t *testing.T) {
	_, err := NewLocal("/does/not/exist")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindConfig))
}

func TestLocalPutListOpenDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	const name = "backup-2023-05-11T05-30-00Z-hourly-dumpall.sql.gz"
	n, err := store.Put(ctx, name, strings.NewReader("dump payload"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("dump payload")), n)

	objects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, name, objects[0].Name)
	assert.Equal(t, n, objects[0].Size)

	body, err := store.Open(ctx, name)
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	assert.Equal(t, "dump payload", string(data))

	require.NoError(t, store.Delete(ctx, name))
	objects, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestLocalOpenMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "backup-2023-05-11T05-30-00Z-hourly-dumpall.sql.gz")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}
