package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache calls
these methods whenever something happens.

These are fire-and-forget event hooks. The hit/miss counters exposed
through the stats snapshot are tracked separately by the cache itself.
*/
type Metrics interface {

	// Hit is called when the cache successfully returns a stored value.
	Hit()

	// Miss is called when the cache has to run the wrapped computation.
	Miss()

	// Eviction is called when a key is removed because the cache is full
	// and needs space.
	Eviction()

	// Expire is called when a key is removed because it has passed its
	// TTL (time-based expiration).
	Expire()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

Callers that do not care about metrics still get a working cache without
nil checks on every event site. It is installed automatically when no
Metrics implementation is configured.
*/
type NoopMetrics struct{}

// All methods below intentionally do nothing.
func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Expire()   {}
