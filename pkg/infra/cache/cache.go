// Package cache provides a session-scoped store for mapped API results.
// Entries are all-or-nothing: a hit returns exactly what was stored at
// insertion time, and the only mutation paths are TTL expiry and wholesale
// invalidation from an explicit refresh.
package cache

import "time"

type Cache interface {
	// Get returns the value stored under the signature, or false when the
	// entry is missing or expired.
	Get(signature string) (any, bool)

	// Put stores a value under the signature. A non-positive ttl means the
	// entry lives until invalidation.
	Put(signature string, value any, ttl time.Duration)

	// InvalidateAll drops every entry.
	InvalidateAll()
}
