package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_CachesFetchResult(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.Name = "fetched"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, "fetched", first.Name)
	assert.Equal(t, 1, fetches)
	assert.True(t, mr.Exists("thing:1"))

	// Second read is served from the cache.
	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, "fetched", second.Name)
	assert.Equal(t, 1, fetches)
}

func TestAside_CorruptEntryFallsThrough(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("thing:1", "{not json"))

	var dest cachedThing
	err := Aside(ctx, "thing:1", &dest, time.Minute, func() error {
		dest.Name = "fresh"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", dest.Name)

	// The corrupt entry was replaced with the fetched value.
	raw, err := mr.Get("thing:1")
	require.NoError(t, err)
	assert.Contains(t, raw, "fresh")
}

func TestAside_NilClientFetchesDirectly(t *testing.T) {
	SetClient(nil)

	var dest cachedThing
	err := Aside(context.Background(), "thing:1", &dest, time.Minute, func() error {
		dest.Name = "direct"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", dest.Name)
}

func TestInvalidateUser(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(7), `{"name":"cached"}`))
	InvalidateUser(ctx, 7)
	assert.False(t, mr.Exists(UserKey(7)))
}
