package timeutil

import (
	"sync"
	"time"
)

// ZoneResolver answers UTC offset queries for IANA timezone identifiers.
// The core consumes this capability instead of embedding its own rule tables;
// implementations must be synchronous and side-effect free. Unrecognized
// identifiers degrade to a zero offset rather than an error.
type ZoneResolver interface {
	// OffsetMinutes returns the signed UTC offset (minutes east of UTC)
	// in effect for the zone at the given instant. Returns 0 for unknown zones.
	OffsetMinutes(timezoneID string, at time.Time) int

	// IsKnownTimezone reports whether the identifier resolves in the
	// backing timezone database.
	IsKnownTimezone(timezoneID string) bool
}

// IANAResolver implements ZoneResolver on top of the host's IANA timezone
// database via time.LoadLocation. Loaded locations are cached; lookups after
// the first are purely in-memory.
type IANAResolver struct {
	mu    sync.RWMutex
	cache map[string]*time.Location
}

// NewIANAResolver creates a resolver with an empty location cache.
func NewIANAResolver() *IANAResolver {
	return &IANAResolver{
		cache: make(map[string]*time.Location),
	}
}

// location returns the cached *time.Location for the identifier, loading it
// on first use. A nil return means the identifier is unknown; the negative
// result is cached too so repeated bad lookups stay cheap.
func (r *IANAResolver) location(timezoneID string) *time.Location {
	r.mu.RLock()
	loc, ok := r.cache[timezoneID]
	r.mu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(timezoneID)
	if err != nil {
		loc = nil
	}

	r.mu.Lock()
	r.cache[timezoneID] = loc
	r.mu.Unlock()
	return loc
}

// OffsetMinutes returns the zone's UTC offset at the instant, in minutes.
// Unknown zones degrade to 0 (UTC); callers that need to distinguish
// "unknown" from "legitimately UTC" should check IsKnownTimezone.
func (r *IANAResolver) OffsetMinutes(timezoneID string, at time.Time) int {
	loc := r.location(timezoneID)
	if loc == nil {
		return 0
	}
	_, offsetSecs := at.In(loc).Zone()
	return offsetSecs / 60
}

// IsKnownTimezone reports whether the identifier is present in the host
// timezone database.
func (r *IANAResolver) IsKnownTimezone(timezoneID string) bool {
	return r.location(timezoneID) != nil
}
