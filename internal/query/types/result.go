package types

import "time"

// CachedResult is a result set stored under a search key. Entries are
// immutable once written and superseded wholesale by a later fetch; absence
// of freshness is detected lazily at read time, never by eviction.
type CachedResult struct {
	Key       string    `json:"key"`
	Items     []Post    `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fresh reports whether the entry is still within its TTL at the given
// instant.
func (r *CachedResult) Fresh(now time.Time, ttl time.Duration) bool {
	return r != nil && now.Before(r.FetchedAt.Add(ttl))
}
