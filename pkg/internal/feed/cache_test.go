package feed

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewCache(rdb)
}

func TestAppendAndReadAllKeepInsertionOrder(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Append(ctx, "b1", "img-1"))
	require.NoError(t, cache.Append(ctx, "b1", "img-2"))
	require.NoError(t, cache.Append(ctx, "b1", "img-3"))

	data, err := cache.ReadAll(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"img-1", "img-2", "img-3"}, data)
}

func TestReadAllIsRestartable(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Append(ctx, "b1", "img-1"))

	first, err := cache.ReadAll(ctx, "b1")
	require.NoError(t, err)
	second, err := cache.ReadAll(ctx, "b1")
	require.NoError(t, err)

	// Reads never consume entries; a re-read starts over from the top.
	assert.Equal(t, first, second)
}

func TestTimelinesAreIndependentPerRecipient(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Append(ctx, "b1", "img-1"))

	data, err := cache.ReadAll(ctx, "b2")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDuplicateAppendIsNotDeduplicated(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Append(ctx, "b1", "img-1"))
	require.NoError(t, cache.Append(ctx, "b1", "img-1"))

	data, err := cache.ReadAll(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"img-1", "img-1"}, data)
}
