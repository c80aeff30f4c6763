package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutOverwritesPending(t *testing.T) {
	mb := New[int]()
	mb.Put(1)
	mb.Put(2)

	j, ok := mb.TryTake()
	require.True(t, ok)
	assert.Equal(t, 2, j)

	_, ok = mb.TryTake()
	assert.False(t, ok)
}

func TestTakeBlocksUntilPut(t *testing.T) {
	mb := New[string]()

	go func() {
		time.Sleep(20 * time.Millisecond)
		mb.Put("job")
	}()

	j, ok := mb.Take(context.Background())
	require.True(t, ok)
	assert.Equal(t, "job", j)
}

func TestTakeReturnsOnCancel(t *testing.T) {
	mb := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok := mb.Take(ctx)
	assert.False(t, ok)
}

func TestHasJob(t *testing.T) {
	mb := New[int]()
	assert.False(t, mb.HasJob())
	mb.Put(7)
	assert.True(t, mb.HasJob())
}
