package types

import "time"

/*
Entry is one memoized result together with its bookkeeping metadata.

The value never changes after insertion. The timestamps and the access
counter are mutated on every cache hit:
- LastAccessedAt feeds LRU eviction ordering
- CreatedAt feeds TTL expiry
- AccessCount is diagnostic, and feeds eviction only in LFU mode
*/
type Entry[V any] struct {
	Value          V
	CreatedAt      time.Time
	LastAccessedAt time.Time
	AccessCount    uint64
}

// Touch records a successful read at the given instant.
// LastAccessedAt never moves behind CreatedAt, even if the clock does.
func (e *Entry[V]) Touch(now time.Time) {
	if now.Before(e.CreatedAt) {
		now = e.CreatedAt
	}
	e.LastAccessedAt = now
	e.AccessCount++
}
