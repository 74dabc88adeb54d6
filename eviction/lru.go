// This file implements LRU eviction.

package eviction

// lruNode represents ONE key inside the LRU structure.
// A doubly-linked list tracks usage order.
type lruNode struct {
	key string

	// prev points toward the more recently used side
	prev *lruNode

	// next points toward the less recently used side
	next *lruNode
}

// lru is the concrete implementation of the LRU eviction policy.
type lru struct {
	// nodes maps cache keys to their list nodes, so moves are O(1).
	nodes map[string]*lruNode

	// head points to the MOST recently used key
	head *lruNode

	// tail points to the LEAST recently used key
	tail *lruNode
}

func newLRU() *lru {
	return &lru{nodes: make(map[string]*lruNode)}
}

// OnGet marks a key as most recently used by moving its node to the
// front of the list.
func (l *lru) OnGet(k string) {
	if n, ok := l.nodes[k]; ok {
		l.moveToFront(n)
	}
}

// OnPut adds a new key at the front (most recently used position).
// An already-tracked key is left where it is; only reads reorder it.
func (l *lru) OnPut(k string) {
	if _, ok := l.nodes[k]; ok {
		return
	}
	n := &lruNode{key: k}
	l.nodes[k] = n
	l.addFront(n)
}

// Evict removes and returns the LEAST recently used key.
// That key is always at the tail of the list. Keys that were never
// read sit in insertion order, so the oldest insertion goes first.
func (l *lru) Evict() string {
	if l.tail == nil {
		return ""
	}

	k := l.tail.key
	l.remove(l.tail)
	delete(l.nodes, k)
	return k
}

// Remove is called when a key is explicitly removed (not evicted).
// This keeps LRU's internal state consistent with the store.
func (l *lru) Remove(k string) {
	if n, ok := l.nodes[k]; ok {
		l.remove(n)
		delete(l.nodes, k)
	}
}

// Clear forgets all tracked keys.
func (l *lru) Clear() {
	l.nodes = make(map[string]*lruNode)
	l.head = nil
	l.tail = nil
}

// addFront links a node in as the most recently used.
func (l *lru) addFront(n *lruNode) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n

	// If the list was empty, head and tail are the same
	if l.tail == nil {
		l.tail = n
	}
}

// remove unlinks a node, updating head and tail if needed.
func (l *lru) remove(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

// moveToFront re-links an accessed node as most recently used.
func (l *lru) moveToFront(n *lruNode) {
	if l.head == n {
		return
	}
	l.remove(n)
	l.addFront(n)
}
