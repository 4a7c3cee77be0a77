package topology

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingProvider struct {
	calls int
	world World
	err   error
}

func (m *countingProvider) Boundaries(_ context.Context) (World, error) {
	m.calls++
	return m.world, m.err
}

func oneRingWorld() World {
	return World{Rings: []Ring{{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}}}}
}

// --- CachedProvider tests ---

func TestCachedProvider_CacheHit(t *testing.T) {
	inner := &countingProvider{world: oneRingWorld()}
	cached := NewCachedProvider(inner, "world", 4, testMetrics())

	w1, err := cached.Boundaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, w1.Rings, 1)

	w2, err := cached.Boundaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, w2.Rings, 1)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedProvider_EmptyWorldNotCached(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, "world", 4, testMetrics())

	_, err := cached.Boundaries(context.Background())
	require.NoError(t, err)
	_, err = cached.Boundaries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "empty result should be retried")
}

func TestCachedProvider_ErrorNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("fetch failed")}
	cached := NewCachedProvider(inner, "world", 4, testMetrics())

	_, err := cached.Boundaries(context.Background())
	require.Error(t, err)
	_, err = cached.Boundaries(context.Background())
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestLRUCache_EvictsOldest(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", oneRingWorld())
	c.put("b", oneRingWorld())
	c.put("c", oneRingWorld()) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.get("b")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUCache_GetRefreshesRecency(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", oneRingWorld())
	c.put("b", oneRingWorld())

	_, ok := c.get("a") // "a" is now most recent
	require.True(t, ok)

	c.put("c", oneRingWorld()) // evicts "b"

	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("b")
	assert.False(t, ok)
}
