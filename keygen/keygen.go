// Package keygen turns call arguments into stable cache keys.
//
// A key must be a pure function of its input: equal arguments always
// produce identical keys, and derivation has no observable side effects.
package keygen

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
)

/*
Deriver converts an argument value into a comparable, stable cache key.

Derive must be total and side-effect-free. Arguments that cannot be
turned into a stable key (functions, channels, cyclic structures)
return an error; the cache surfaces it to the caller and neither reads
nor writes the store for that call.
*/
type Deriver[K any] interface {
	Derive(args K) (string, error)
}

// DeriverFunc adapts a plain function to the Deriver interface.
type DeriverFunc[K any] func(args K) (string, error)

func (f DeriverFunc[K]) Derive(args K) (string, error) { return f(args) }

/*
JSONDeriver is the default key derivation strategy.

The key is the canonical JSON text of the argument value:
- map keys are emitted in sorted order, so structurally equal maps
  always produce the same key regardless of insertion order
- struct fields are emitted in declaration order
- no insignificant whitespace

The encoding is representation-sensitive: numerically equal values of
different Go types (int(1) vs float64(1)) serialize differently and
therefore produce different keys. Values encoding/json cannot handle
(functions, channels, cyclic values, NaN) fail derivation.
*/
type JSONDeriver[K any] struct{}

func (JSONDeriver[K]) Derive(args K) (string, error) {
	b, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("encode arguments: %w", err)
	}
	return string(b), nil
}

/*
HashedDeriver wraps another Deriver and digests its output with FNV-1a.

Useful when argument tuples are large and keys would otherwise hold the
full encoded form in memory per entry. Hashing trades that space for a
theoretical collision risk; callers who need collision-free keys should
use the inner deriver directly.
*/
type HashedDeriver[K any] struct {
	// Inner produces the canonical form to be hashed.
	// Nil means JSONDeriver.
	Inner Deriver[K]
}

func (h HashedDeriver[K]) Derive(args K) (string, error) {
	inner := h.Inner
	if inner == nil {
		inner = JSONDeriver[K]{}
	}

	s, err := inner.Derive(args)
	if err != nil {
		return "", err
	}

	d := fnv.New64a()
	d.Write([]byte(s))
	return strconv.FormatUint(d.Sum64(), 16), nil
}
