package eviction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

//
// ================= LRU =================
//

func TestLRUEvictsOldestUntouched(t *testing.T) {
	p := New(LRU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("c")

	assert.Equal(t, "a", p.Evict(), "never-read keys go in insertion order")
	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "c", p.Evict())
	assert.Equal(t, "", p.Evict(), "empty policy has no victim")
}

func TestLRUReadPromotes(t *testing.T) {
	p := New(LRU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnGet("a")

	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "a", p.Evict())
}

func TestLRURemoveUnlinks(t *testing.T) {
	p := New(LRU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("c")
	p.Remove("b")

	assert.Equal(t, "a", p.Evict())
	assert.Equal(t, "c", p.Evict())
	assert.Equal(t, "", p.Evict())

	// Removing an untracked key is a no-op.
	p.Remove("ghost")
}

func TestLRURepeatPutDoesNotReorder(t *testing.T) {
	p := New(LRU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("a") // already tracked, stays where it is

	assert.Equal(t, "a", p.Evict())
}

func TestLRUClear(t *testing.T) {
	p := New(LRU)

	p.OnPut("a")
	p.OnPut("b")
	p.Clear()

	assert.Equal(t, "", p.Evict())

	// Usable again after clear.
	p.OnPut("x")
	assert.Equal(t, "x", p.Evict())
}

//
// ================= LFU =================
//

func TestLFUEvictsLowestFrequency(t *testing.T) {
	p := New(LFU)

	p.OnPut("hot")
	p.OnPut("cold")
	p.OnGet("hot")
	p.OnGet("hot")
	p.OnGet("cold")

	assert.Equal(t, "cold", p.Evict())
	assert.Equal(t, "hot", p.Evict())
}

func TestLFUSparesMostRecentInsertion(t *testing.T) {
	p := New(LFU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnGet("a")
	p.OnGet("b")
	p.OnPut("c") // alone in the freq-1 bucket, but just inserted

	assert.Equal(t, "a", p.Evict(), "victim comes from the next bucket, not the newcomer")
	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "c", p.Evict(), "the newcomer goes once nothing else remains")
}

func TestLFUEvictRepairsMinFreqAcrossBuckets(t *testing.T) {
	p := New(LFU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("c")
	p.OnGet("b")
	p.OnGet("c")

	// Draining the freq-1 bucket must not strand the freq-2 keys.
	assert.Equal(t, "a", p.Evict())
	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "c", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestLFURemoveRepairsMinFreq(t *testing.T) {
	p := New(LFU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnGet("b")
	p.Remove("a") // empties the minimum-frequency bucket

	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestLFUTieBreaksByBucketEntryOrder(t *testing.T) {
	p := New(LFU)

	p.OnPut("first")
	p.OnPut("second")
	p.OnPut("third")

	assert.Equal(t, "first", p.Evict(), "oldest key in the tied bucket goes first")
	assert.Equal(t, "second", p.Evict())
}

func TestLFURemoveDropsBookkeeping(t *testing.T) {
	p := New(LFU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnGet("a")
	p.Remove("b")

	assert.Equal(t, "a", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestLFUClear(t *testing.T) {
	p := New(LFU)

	p.OnPut("a")
	p.OnGet("a")
	p.Clear()

	assert.Equal(t, "", p.Evict())
}

//
// ================= NONE / FACTORY =================
//

func TestNonePolicyNeverProposesVictims(t *testing.T) {
	p := New(None)

	p.OnPut("a")
	p.OnGet("a")

	assert.Equal(t, "", p.Evict())
}

func TestNewPanicsOnUnknownPolicy(t *testing.T) {
	assert.Panics(t, func() { New("MRU") })
}
