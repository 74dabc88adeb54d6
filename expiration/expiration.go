// This file defines how cache entries expire over time.

package expiration

import "time"

/*
Strategy is the interface that all expiration rules must follow.
Instead of hard-coding expiration logic into the cache, we define a
strategy so expiration behavior can be swapped easily.

IsExpired is a pure function over the entry's timestamps and the
current instant. Expiry is checked lazily at access time only; there is
no background sweep, so an entry that is never read again occupies its
slot until evicted or cleared.
*/
type Strategy interface {

	// IsExpired reports whether an entry created at created and last
	// read at accessed is stale at now.
	IsExpired(created, accessed, now time.Time) bool
}

/*
ExpireAfterWrite is the default expiration rule: an entry is stale once
a fixed TTL has elapsed since it was created, no matter how often it
has been read since.

A TTL of zero means entries never expire.
*/
type ExpireAfterWrite struct {
	TTL time.Duration
}

func (e ExpireAfterWrite) IsExpired(created, _, now time.Time) bool {
	return e.TTL > 0 && now.Sub(created) >= e.TTL
}

/*
ExpireAfterAccess implements "sliding TTL": every successful read
pushes the expiration window forward. As long as the entry keeps
getting used it stays alive; once nobody touches it for a full TTL it
expires.

A TTL of zero means entries never expire.
*/
type ExpireAfterAccess struct {
	TTL time.Duration
}

func (e ExpireAfterAccess) IsExpired(_, accessed, now time.Time) bool {
	return e.TTL > 0 && now.Sub(accessed) >= e.TTL
}
