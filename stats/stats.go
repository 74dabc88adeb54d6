// Package stats tracks cache hit and miss accounting.
package stats

import "sync"

/*
Snapshot is a point-in-time view of cache effectiveness.

HitRate is hits / (hits + misses), or 0 before any call has completed.
Counters are monotonically non-decreasing for the cache's lifetime and
reset only by an explicit Reset; clearing the cache does not touch them.
*/
type Snapshot struct {
	Hits    uint64
	Misses  uint64
	Size    int
	HitRate float64
}

/*
Tracker counts hits and misses.

The cache mutates the tracker from under its own lock; Tracker keeps a
lock of its own only so that Snapshot stays safe when read outside the
cache. Reading a snapshot never mutates the counters.
*/
type Tracker struct {
	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// RecordHit counts a call served from the store.
func (t *Tracker) RecordHit() {
	t.mu.Lock()
	t.hits++
	t.mu.Unlock()
}

// RecordMiss counts a call that ran the wrapped computation.
func (t *Tracker) RecordMiss() {
	t.mu.Lock()
	t.misses++
	t.mu.Unlock()
}

// Snapshot returns the current counters together with the store size
// supplied by the caller.
func (t *Tracker) Snapshot(size int) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		Hits:   t.hits,
		Misses: t.misses,
		Size:   size,
	}
	if total := t.hits + t.misses; total > 0 {
		s.HitRate = float64(t.hits) / float64(total)
	}
	return s
}

// Reset zeroes both counters.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.hits = 0
	t.misses = 0
	t.mu.Unlock()
}
