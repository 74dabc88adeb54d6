package eviction

/*
This file defines how the cache decides what to remove when it runs out of space.
*/

/*
Policy is the interface that all eviction strategies must follow.

The cache does NOT care how eviction works internally.
It only calls these methods, always from under the cache lock:

- OnGet / OnPut keep the policy's recency or frequency bookkeeping in
  step with reads and insertions
- Remove cleans up bookkeeping when a key leaves the cache for any
  reason other than eviction
- Evict names the next victim and forgets it
- Clear drops all bookkeeping at once
*/
type Policy interface {

	// OnGet is called whenever a key is read from the cache.
	// LRU moves the key to the front; LFU bumps its frequency.
	OnGet(string)

	// OnPut is called whenever a key is inserted into the cache.
	// A key that is already tracked is left where it is.
	OnPut(string)

	// Remove is called when a key is explicitly removed from the cache
	// (invalidation or expiry, not eviction). It cleans up any internal
	// bookkeeping for that key.
	Remove(string)

	// Evict selects the key that should be removed, forgets it, and
	// returns it. Returns "" when the policy tracks nothing.
	// The cache then removes the key from its own storage.
	Evict() string

	// Clear forgets all tracked keys.
	Clear()
}

// PolicyType is a simple identifier for supported eviction strategies.
type PolicyType string

const (
	// LRU (Least Recently Used): evicts the key that has NOT been
	// accessed for the longest time. Keys touched at the same instant
	// fall back to insertion order, oldest first.
	LRU PolicyType = "LRU"

	// LFU (Least Frequently Used): evicts the key with the fewest
	// accesses. Ties go to the key that entered its frequency bucket
	// first, and the most recently inserted key is spared while any
	// other key remains, so inserting can never evict the new entry.
	LFU PolicyType = "LFU"

	// None disables eviction tracking entirely. The cache grows without
	// bound; callers pick this explicitly.
	None PolicyType = "NONE"
)

// New is a small factory function.
// Given a PolicyType, it creates the corresponding eviction policy.
func New(t PolicyType) Policy {
	switch t {
	case LRU:
		return newLRU()
	case LFU:
		return newLFU()
	case None:
		return none{}
	default:
		panic("unknown eviction policy")
	}
}

// none tracks nothing and never proposes a victim.
type none struct{}

func (none) OnGet(string)  {}
func (none) OnPut(string)  {}
func (none) Remove(string) {}
func (none) Evict() string { return "" }
func (none) Clear()        {}
