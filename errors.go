package memocache

import "errors"

/*
The cache surfaces exactly three error classes, all matched with
errors.Is and all propagated to the caller untouched; the cache never
swallows or retries. Eviction and expiry are never errors. They are
silent steady-state behavior.
*/
var (
	// ErrConfig reports invalid construction parameters. The cache is
	// not created.
	ErrConfig = errors.New("memocache: invalid configuration")

	// ErrKeyDerivation reports an argument tuple that cannot be turned
	// into a stable key. The call fails; nothing is read from or
	// written to the store.
	ErrKeyDerivation = errors.New("memocache: cannot derive cache key")

	// ErrComputation reports a failed wrapped computation. The call
	// fails; nothing is cached for that key, and entries for other
	// keys are unaffected.
	ErrComputation = errors.New("memocache: computation failed")
)
