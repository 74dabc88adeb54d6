package memocache

// White-box tests that pin expiry boundaries to a fake clock instead
// of sleeping.

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newClockedCache(t *testing.T, cfg *Config[int]) (*Cache[int, string], *fakeClock, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	fn := func(ctx context.Context, n int) (string, error) {
		calls.Add(1)
		return "v", nil
	}

	c, err := New(fn, cfg)
	require.NoError(t, err)

	clk := &fakeClock{now: time.Unix(1000, 0)}
	c.now = clk.Now
	return c, clk, &calls
}

func TestExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	const ttl = 100 * time.Millisecond

	c, clk, calls := newClockedCache(t, &Config[int]{MaxSize: 10, TTL: ttl})

	_, err := c.Call(ctx, 1) // t0: miss
	require.NoError(t, err)

	clk.Advance(ttl - time.Millisecond)
	_, err = c.Call(ctx, 1) // t0 + T - ε: hit
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())

	clk.Advance(time.Millisecond)
	_, err = c.Call(ctx, 1) // t0 + T exactly: age >= ttl, recomputed
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestSlidingExpiryFollowsLastAccess(t *testing.T) {
	ctx := context.Background()
	const ttl = 100 * time.Millisecond

	c, clk, calls := newClockedCache(t, &Config[int]{
		MaxSize: 10,
		TTL:     ttl,
		Sliding: true,
	})

	c.Call(ctx, 1) // t0: miss

	// Keep touching the entry just inside the window; it stays alive
	// far beyond a single TTL from creation.
	for i := 0; i < 5; i++ {
		clk.Advance(ttl / 2)
		_, err := c.Call(ctx, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), calls.Load())

	// Once a full window passes untouched, it expires.
	clk.Advance(ttl)
	c.Call(ctx, 1)
	assert.Equal(t, int64(2), calls.Load())
}

func TestHitKeepsAccessTimeAheadOfCreation(t *testing.T) {
	ctx := context.Background()

	c, clk, _ := newClockedCache(t, &Config[int]{MaxSize: 10})

	c.Call(ctx, 1)
	clk.Advance(time.Second)
	c.Call(ctx, 1)

	key, err := c.deriver.Derive(1)
	require.NoError(t, err)

	ent := c.entries[key]
	require.NotNil(t, ent)
	assert.False(t, ent.LastAccessedAt.Before(ent.CreatedAt))
	assert.Equal(t, uint64(1), ent.AccessCount)
}

func TestExpiredEntryLeavesBeforeRecompute(t *testing.T) {
	ctx := context.Background()
	const ttl = 50 * time.Millisecond

	// Capacity 1 makes any transient over-capacity state visible: if
	// the expired entry were still in place during insertion, the new
	// entry would be evicted immediately.
	c, clk, _ := newClockedCache(t, &Config[int]{MaxSize: 1, TTL: ttl})

	c.Call(ctx, 1)
	clk.Advance(ttl * 2)
	c.Call(ctx, 1)

	assert.Equal(t, 1, c.Len())
	ok, err := c.Contains(1)
	require.NoError(t, err)
	assert.True(t, ok)
}
