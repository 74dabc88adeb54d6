// This file implements LFU eviction.

package eviction

// lfuNode represents one key tracked by LFU.
type lfuNode struct {
	key  string
	freq uint64 // how many times this key was accessed

	// seq orders keys within a frequency bucket. The key that entered
	// its current bucket first has the smallest seq and is evicted
	// first on a frequency tie.
	seq uint64
}

type lfu struct {
	// nodes lets us quickly find the node for a key
	nodes map[string]*lfuNode

	// buckets groups keys by how many times they were accessed
	buckets map[uint64]map[string]*lfuNode

	// minFreq tracks the smallest frequency currently present,
	// avoiding a scan of all buckets on the usual eviction path.
	minFreq uint64

	// nextSeq hands out bucket-entry order stamps.
	nextSeq uint64

	// lastPut is the most recently inserted key, until it is read or
	// removed. Evict spares it while any other key is tracked, so an
	// insertion that triggers eviction can never evict itself.
	lastPut string
}

func newLFU() *lfu {
	return &lfu{
		nodes:   make(map[string]*lfuNode),
		buckets: make(map[uint64]map[string]*lfuNode),
	}
}

// OnGet bumps the key's frequency, moving it to the next bucket.
// A read also ends the key's grace period as the latest insertion.
func (l *lfu) OnGet(k string) {
	if k == l.lastPut {
		l.lastPut = ""
	}

	n, ok := l.nodes[k]
	if !ok {
		return
	}

	old := n.freq
	n.freq++
	l.nextSeq++
	n.seq = l.nextSeq

	delete(l.buckets[old], k)
	if len(l.buckets[old]) == 0 {
		delete(l.buckets, old)

		// The key moved to old+1, so that bucket is non-empty and is
		// the new minimum if old was.
		if l.minFreq == old {
			l.minFreq++
		}
	}

	l.addToBucket(n)
}

// OnPut starts tracking a new key at frequency 1.
func (l *lfu) OnPut(k string) {
	l.lastPut = k

	if _, ok := l.nodes[k]; ok {
		return
	}

	l.nextSeq++
	n := &lfuNode{key: k, freq: 1, seq: l.nextSeq}
	l.nodes[k] = n
	l.addToBucket(n)

	// A new key with freq=1 exists, so minFreq must be 1
	l.minFreq = 1
}

/*
Evict removes the key with the lowest frequency. Within the lowest
bucket, the key that entered it earliest goes first.

The most recently inserted key is spared while any other key is
tracked: when it is the only occupant of the minimum bucket, the
victim comes from the next-lowest bucket instead. Only when nothing
else remains does the newcomer itself go.
*/
func (l *lfu) Evict() string {
	victim := l.victimIn(l.minFreq)
	if victim == nil {
		if f, ok := l.nextFreq(l.minFreq); ok {
			victim = l.victimIn(f)
		}
	}
	if victim == nil {
		// Only the spared newcomer is left, if anything.
		victim = l.nodes[l.lastPut]
	}
	if victim == nil {
		return ""
	}

	l.unlink(victim)
	return victim.key
}

// Remove is called when a key is explicitly removed (not evicted).
func (l *lfu) Remove(k string) {
	if n, ok := l.nodes[k]; ok {
		l.unlink(n)
	}
}

// Clear forgets all tracked keys.
func (l *lfu) Clear() {
	l.nodes = make(map[string]*lfuNode)
	l.buckets = make(map[uint64]map[string]*lfuNode)
	l.minFreq = 0
	l.nextSeq = 0
	l.lastPut = ""
}

// victimIn returns the oldest bucket entry at the given frequency,
// skipping the spared newcomer.
func (l *lfu) victimIn(freq uint64) *lfuNode {
	var victim *lfuNode
	for _, n := range l.buckets[freq] {
		if n.key == l.lastPut {
			continue
		}
		if victim == nil || n.seq < victim.seq {
			victim = n
		}
	}
	return victim
}

// nextFreq returns the smallest tracked frequency above freq.
func (l *lfu) nextFreq(freq uint64) (uint64, bool) {
	var next uint64
	found := false
	for f := range l.buckets {
		if f > freq && (!found || f < next) {
			next = f
			found = true
		}
	}
	return next, found
}

// unlink removes a node from all bookkeeping. When its bucket empties
// at the minimum frequency, minFreq is recomputed so later evictions
// still find the remaining keys.
func (l *lfu) unlink(n *lfuNode) {
	delete(l.buckets[n.freq], n.key)
	if len(l.buckets[n.freq]) == 0 {
		delete(l.buckets, n.freq)
		if n.freq == l.minFreq {
			l.resetMinFreq()
		}
	}

	delete(l.nodes, n.key)
	if n.key == l.lastPut {
		l.lastPut = ""
	}
}

// resetMinFreq rescans the buckets for the smallest tracked frequency.
// Zero means no keys are tracked.
func (l *lfu) resetMinFreq() {
	l.minFreq = 0
	for f := range l.buckets {
		if l.minFreq == 0 || f < l.minFreq {
			l.minFreq = f
		}
	}
}

func (l *lfu) addToBucket(n *lfuNode) {
	if l.buckets[n.freq] == nil {
		l.buckets[n.freq] = make(map[string]*lfuNode)
	}
	l.buckets[n.freq][n.key] = n
}
