package pricesync

import "time"

// DefaultTTL is how long a cached price stays usable without a refetch.
const DefaultTTL = 24 * time.Hour

// Freshness decides whether cached values for an item may be reused. When
// disabled, everything counts as fresh; otherwise an item is fresh iff it has
// a recorded fetch time within the TTL. No recorded time means stale.
type Freshness struct {
	enabled bool
	ttl     time.Duration
	times   map[int]time.Time
	now     func() time.Time
}

// NewFreshness builds a policy over the loaded fetch-time map. A non-positive
// ttl falls back to DefaultTTL.
func NewFreshness(enabled bool, ttl time.Duration, times map[int]time.Time) *Freshness {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Freshness{enabled: enabled, ttl: ttl, times: times, now: time.Now}
}

// IsFresh reports whether itemID's cached values are still within the TTL.
func (f *Freshness) IsFresh(itemID int) bool {
	if !f.enabled {
		return true
	}
	fetched, ok := f.times[itemID]
	if !ok {
		return false
	}
	return f.now().Sub(fetched) <= f.ttl
}
