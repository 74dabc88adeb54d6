// Package memocache memoizes the results of a deterministic function
// behind a bounded, in-memory cache with TTL expiry and LRU eviction.
//
// Repeated calls with equal arguments are served from the cache instead
// of recomputing. The cache owns all of its state: capacity bound,
// recency tracking, lazy expiry, hit/miss accounting, and explicit
// invalidation. It assumes no host lifecycle and can be called from any
// context; whoever constructs a Cache owns it, and sharing happens by
// passing the same instance around, never through a global registry.
//
// Basic usage:
//
//	fetch := func(ctx context.Context, userID int) (*User, error) {
//	    return queryDatabase(ctx, userID)
//	}
//
//	cache, err := memocache.New(fetch, nil) // defaults: 100 entries, 5m TTL, LRU
//	if err != nil {
//	    return err
//	}
//
//	user, err := cache.Call(ctx, 42)  // miss: runs fetch
//	user, err = cache.Call(ctx, 42)   // hit: served from cache
//
//	snap := cache.Stats()
//	fmt.Printf("hit rate %.2f\n", snap.HitRate)
//
// Keys are derived from the argument value by keygen.JSONDeriver unless
// a custom keygen.Deriver is configured. Arguments that cannot be
// serialized fail the call with ErrKeyDerivation; a failing computation
// fails the call with ErrComputation and caches nothing.
//
// By default all cache operations for one instance run under a single
// lock, so concurrent callers are safe but serialize through the
// wrapped computation. Setting Config.SingleFlight runs computations
// outside the lock and coalesces concurrent calls for the same key into
// one execution.
package memocache
