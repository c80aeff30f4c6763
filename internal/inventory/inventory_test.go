package inventory

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/naming"
	"github.com/raoulx24/sql-archiver/internal/storage"
)

type listStore struct {
	objects []storage.ObjectInfo
}

func (s *listStore) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.objects, nil
}

func (s *listStore) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	panic("not used")
}

func (s *listStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	panic("not used")
}

func (s *listStore) Delete(ctx context.Context, name string) error {
	panic("not used")
}

func TestBuildSkipsForeignFilesAndSortsNewestFirst(t *testing.T) {
	t1 := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2023, 1, 3, 10, 0, 0, 0, time.UTC)
	t3 := time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)

	store := &listStore{objects: []storage.ObjectInfo{
		{Name: naming.Encode(t1, naming.Hourly), Size: 100},
		{Name: "lost+found", Size: 0},
		{Name: naming.Encode(t2, naming.Hourly), Size: 300},
		{Name: ".tmp-backup-2023-01-04T00-00-00Z-hourly-dumpall.sql.gz", Size: 5},
		{Name: naming.Encode(t3, naming.Daily), Size: 200},
	}}

	inv, err := Build(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, inv, 3)
	assert.True(t, inv[0].Timestamp.Equal(t2))
	assert.True(t, inv[1].Timestamp.Equal(t3))
	assert.True(t, inv[2].Timestamp.Equal(t1))
	assert.Equal(t, naming.Daily, inv[1].Generation)
	assert.Equal(t, int64(600), inv.TotalSize())
}

func TestLatestAndByName(t *testing.T) {
	inv, err := Build(context.Background(), &listStore{}, zap.NewNop())
	require.NoError(t, err)

	_, ok := inv.Latest()
	assert.False(t, ok)

	ts := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	name := naming.Encode(ts, naming.Hourly)
	inv, err = Build(context.Background(), &listStore{objects: []storage.ObjectInfo{{Name: name}}}, zap.NewNop())
	require.NoError(t, err)

	latest, ok := inv.Latest()
	require.True(t, ok)
	assert.Equal(t, name, latest.Name)

	_, ok = inv.ByName("nope")
	assert.False(t, ok)
	rec, ok := inv.ByName(name)
	require.True(t, ok)
	assert.True(t, rec.Timestamp.Equal(ts))
}

func TestPrettySize(t *testing.T) {
	assert.Equal(t, "512 Bytes", PrettySize(512))
	assert.Equal(t, "1.50 KBytes", PrettySize(1500))
	assert.Equal(t, "2.97 GBytes", PrettySize(2971821278))
}
