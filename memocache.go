package memocache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"memocache/eviction"
	"memocache/expiration"
	"memocache/keygen"
	"memocache/stats"
	"memocache/types"
)

// Func is the wrapped computation. It must be deterministic per equal
// arguments: callable zero or more times with observably equivalent
// results. The cache imposes nothing else on it and never cancels it;
// cancellation is between the caller and the function via ctx.
type Func[K, V any] func(ctx context.Context, args K) (V, error)

// Defaults applied by DefaultConfig.
const (
	DefaultMaxSize = 100
	DefaultTTL     = 5 * time.Minute
)

/*
Config carries construction-time options for a Cache.

Pass nil to New to get DefaultConfig. A hand-built Config is validated
strictly: MaxSize must be at least 1 and TTL non-negative, otherwise
construction fails with ErrConfig.
*/
type Config[K any] struct {

	// MaxSize is the maximum number of live entries. Must be >= 1.
	MaxSize int

	// TTL is the maximum age of an entry. Zero disables expiry.
	TTL time.Duration

	// DisableEviction turns off capacity enforcement entirely. The
	// cache then grows without bound; this is a caller-accepted risk,
	// not a silent cap override. MaxSize is ignored while set.
	DisableEviction bool

	// Policy selects the eviction strategy. Empty means LRU. LFU uses
	// access frequency instead of recency; None behaves like
	// DisableEviction.
	Policy eviction.PolicyType

	// Sliding switches expiry from entry age to time since last
	// access, so entries that keep getting read stay alive.
	Sliding bool

	// SingleFlight coalesces concurrent computations for the same
	// derived key into one execution and runs them outside the cache
	// lock. Off by default: without it the lock is held across the
	// computation, so concurrent callers serialize instead of
	// duplicating work.
	SingleFlight bool

	// Metrics receives cache lifecycle events. Nil means no-op.
	Metrics types.Metrics

	// Deriver turns arguments into cache keys.
	// Nil means keygen.JSONDeriver.
	Deriver keygen.Deriver[K]
}

// DefaultConfig returns the stock configuration: 100 entries, 5 minute
// TTL, LRU eviction.
func DefaultConfig[K any]() *Config[K] {
	return &Config[K]{
		MaxSize: DefaultMaxSize,
		TTL:     DefaultTTL,
		Policy:  eviction.LRU,
	}
}

func (c *Config[K]) validate() error {
	if c.MaxSize < 1 {
		return fmt.Errorf("%w: max size must be at least 1, got %d", ErrConfig, c.MaxSize)
	}
	if c.TTL < 0 {
		return fmt.Errorf("%w: ttl must be non-negative, got %v", ErrConfig, c.TTL)
	}
	switch c.Policy {
	case "", eviction.LRU, eviction.LFU, eviction.None:
	default:
		return fmt.Errorf("%w: unknown eviction policy %q", ErrConfig, c.Policy)
	}
	return nil
}

/*
Cache memoizes one wrapped computation.

This struct is the orchestrator that connects:
- the entry store (a plain map, exclusively owned by the cache)
- key derivation
- the eviction policy
- the expiration strategy
- hit/miss accounting and metrics

One mutex guards the whole call sequence (lookup, expiry check, delete,
compute, insert, evict, stat update), so eviction and insertion always
observe a consistent view of size versus capacity.
*/
type Cache[K, V any] struct {
	mu      sync.Mutex
	fn      Func[K, V]
	deriver keygen.Deriver[K]

	entries map[string]*types.Entry[V]
	policy  eviction.Policy
	expiry  expiration.Strategy

	capacity  int
	unbounded bool

	tracker stats.Tracker
	metrics types.Metrics

	coalesce bool
	sf       singleflight.Group

	// now is swapped out in tests.
	now func() time.Time
}

// New builds a Cache around fn. A nil cfg means DefaultConfig.
func New[K, V any](fn Func[K, V], cfg *Config[K]) (*Cache[K, V], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil computation", ErrConfig)
	}
	if cfg == nil {
		cfg = DefaultConfig[K]()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	pt := cfg.Policy
	if pt == "" {
		pt = eviction.LRU
	}
	if cfg.DisableEviction {
		pt = eviction.None
	}
	unbounded := pt == eviction.None

	var exp expiration.Strategy
	if cfg.Sliding {
		exp = expiration.ExpireAfterAccess{TTL: cfg.TTL}
	} else {
		exp = expiration.ExpireAfterWrite{TTL: cfg.TTL}
	}

	deriver := cfg.Deriver
	if deriver == nil {
		deriver = keygen.JSONDeriver[K]{}
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &Cache[K, V]{
		fn:        fn,
		deriver:   deriver,
		entries:   make(map[string]*types.Entry[V]),
		policy:    eviction.New(pt),
		expiry:    exp,
		capacity:  cfg.MaxSize,
		unbounded: unbounded,
		metrics:   metrics,
		coalesce:  cfg.SingleFlight,
		now:       time.Now,
	}, nil
}

/*
Call is the memoized invocation.

1. Derive the key; a derivation failure surfaces as ErrKeyDerivation
   and touches nothing.
2. Look up the entry. Present and fresh: update recency, record a hit,
   return the stored value.
3. Present but expired: delete the entry first, freeing its slot
   before recomputation, then fall through to the miss path.
4. Miss: run the wrapped computation. Failure surfaces as
   ErrComputation and caches nothing. Success inserts a fresh entry,
   records the miss, and evicts while over capacity.

The returned value is the stored one. For value types that is a copy;
pointer, slice and map values are shared with every future caller, so
only store such values if they are designed for safe sharing.
*/
func (c *Cache[K, V]) Call(ctx context.Context, args K) (V, error) {
	var zero V

	key, err := c.deriver.Derive(args)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}

	c.mu.Lock()

	if ent, ok := c.entries[key]; ok {
		now := c.now()
		if c.expiry.IsExpired(ent.CreatedAt, ent.LastAccessedAt, now) {
			// Expired entries leave before recomputation so the store
			// never sits transiently over capacity.
			c.removeLocked(key)
			c.metrics.Expire()
		} else {
			ent.Touch(now)
			c.policy.OnGet(key)
			c.tracker.RecordHit()
			c.metrics.Hit()
			v := ent.Value
			c.mu.Unlock()
			return v, nil
		}
	}

	if c.coalesce {
		return c.callCoalesced(ctx, key, args)
	}

	// The lock stays held across the computation: concurrent callers
	// for any key serialize here rather than compute twice.
	v, err := c.fn(ctx, args)
	if err != nil {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %w", ErrComputation, err)
	}

	c.insertLocked(key, v)
	c.mu.Unlock()
	return v, nil
}

// callCoalesced runs the computation outside the cache lock, with
// concurrent calls for the same key collapsed into one execution.
// Entered with c.mu held; returns with it released.
func (c *Cache[K, V]) callCoalesced(ctx context.Context, key string, args K) (V, error) {
	var zero V
	c.mu.Unlock()

	res, err, _ := c.sf.Do(key, func() (any, error) {
		return c.fn(ctx, args)
	})
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrComputation, err)
	}
	v := res.(V)

	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		c.insertLocked(key, v)
	} else {
		// Another coalesced caller inserted first. This call still
		// missed, so it still counts as one.
		c.tracker.RecordMiss()
		c.metrics.Miss()
	}
	c.mu.Unlock()
	return v, nil
}

// Invalidate removes the entry for the derived key if present.
// Removing an absent key is a no-op, not an error.
func (c *Cache[K, V]) Invalidate(args K) error {
	key, err := c.deriver.Derive(args)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}

	c.mu.Lock()
	c.removeLocked(key)
	c.mu.Unlock()
	return nil
}

// Contains reports whether a fresh entry exists for the arguments,
// without updating recency or touching the hit/miss counters.
func (c *Cache[K, V]) Contains(args K) (bool, error) {
	key, err := c.deriver.Derive(args)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return !c.expiry.IsExpired(ent.CreatedAt, ent.LastAccessedAt, c.now()), nil
}

// Clear removes all entries. Hit/miss counters are kept; use
// ResetStats to zero them.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*types.Entry[V])
	c.policy.Clear()
	c.mu.Unlock()
}

// ResetStats zeroes the hit/miss counters without touching entries.
func (c *Cache[K, V]) ResetStats() {
	c.tracker.Reset()
}

// Stats returns a point-in-time snapshot of counters and store size.
func (c *Cache[K, V]) Stats() stats.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Snapshot(len(c.entries))
}

// Len returns the current number of live entries, expired-but-unread
// ones included.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Resize changes the capacity bound, evicting immediately while the
// store exceeds the new bound. It returns the number of evictions.
// In unbounded mode the new bound is recorded but not enforced.
func (c *Cache[K, V]) Resize(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: max size must be at least 1, got %d", ErrConfig, n)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.capacity = n
	before := len(c.entries)
	c.evictLocked()
	return before - len(c.entries), nil
}

// insertLocked stores a freshly computed value, records the miss, and
// enforces capacity. Eviction runs strictly after the insertion, so
// the new entry is never the victim unless capacity is 1.
func (c *Cache[K, V]) insertLocked(key string, v V) {
	now := c.now()
	c.entries[key] = &types.Entry[V]{
		Value:          v,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	c.policy.OnPut(key)
	c.tracker.RecordMiss()
	c.metrics.Miss()
	c.evictLocked()
}

// evictLocked removes entries while the store exceeds capacity. The
// loop form matters when Resize shrinks capacity by more than one.
func (c *Cache[K, V]) evictLocked() {
	if c.unbounded {
		return
	}
	for len(c.entries) > c.capacity {
		victim := c.policy.Evict()
		if victim == "" {
			panic("memocache: eviction policy has no victim for an over-capacity store")
		}
		if _, ok := c.entries[victim]; !ok {
			panic("memocache: eviction policy proposed a key absent from the store")
		}
		delete(c.entries, victim)
		c.metrics.Eviction()
	}
}

// removeLocked deletes an entry and its policy bookkeeping.
func (c *Cache[K, V]) removeLocked(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	c.policy.Remove(key)
}
