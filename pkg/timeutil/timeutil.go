// Package timeutil converts civil wall-clock moments to absolute UTC instants
// and back. Civil time is ambiguous around daylight-saving transitions: a
// "fall back" hour occurs twice and a "spring forward" hour never occurs.
// Resolve handles both deterministically with a small fixed-point offset
// correction loop rather than raising errors.
package timeutil

import (
	"math"
	"time"
)

// maxOffsetIterations bounds the DST correction loop. Ordinary resolutions
// converge in 1-2 iterations; the cap guards against oscillation across a
// spring-forward gap, where the loop deterministically lands on the
// post-transition interpretation of the requested hour.
const maxOffsetIterations = 3

// Resolve converts a local wall-clock hour on a calendar day into an absolute
// UTC instant. referenceDate may be any instant within the intended day; the
// calendar (year, month, day) is the one the zone assigns to it. localHour is
// fractional hours in [0, 24).
//
// The candidate instant starts as the naive UTC interpretation of the civil
// moment and is corrected by repeatedly looking up the zone offset at the
// current candidate and re-subtracting it, until the offset stabilizes or the
// iteration cap is reached. At a fall-back boundary (the repeated hour) this
// converges to the earlier-occurring of the two valid instants.
func Resolve(zones ZoneResolver, referenceDate time.Time, localHour float64, timezoneID string) time.Time {
	year, month, day := CivilDate(zones, referenceDate, timezoneID)

	naive := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Add(hoursToDuration(localHour))

	candidate := naive
	for i := 0; i < maxOffsetIterations; i++ {
		offset := time.Duration(zones.OffsetMinutes(timezoneID, candidate)) * time.Minute
		next := naive.Add(-offset)
		if next.Equal(candidate) {
			break
		}
		candidate = next
	}
	return candidate
}

// ExtractLocalHour returns the fractional wall-clock hour (to minute
// precision) that the zone assigns to the instant. An unknown timezone
// degrades to noon (12.0) rather than failing; callers that care should
// check IsKnownTimezone separately.
func ExtractLocalHour(zones ZoneResolver, instant time.Time, timezoneID string) float64 {
	if !zones.IsKnownTimezone(timezoneID) {
		return 12.0
	}

	offset := time.Duration(zones.OffsetMinutes(timezoneID, instant)) * time.Minute
	local := instant.UTC().Add(offset)

	hour := float64(local.Hour()) + float64(local.Minute())/60.0
	// Normalize a midnight reading of 24 back to 0.
	if hour >= 24 {
		hour -= 24
	}
	return hour
}

// CivilDate returns the calendar (year, month, day) the zone assigns to the
// instant.
func CivilDate(zones ZoneResolver, instant time.Time, timezoneID string) (int, time.Month, int) {
	offset := time.Duration(zones.OffsetMinutes(timezoneID, instant)) * time.Minute
	shifted := instant.UTC().Add(offset)
	return shifted.Date()
}

// DateAnchor returns an instant that falls inside the zone's local calendar
// day (year, month, day): local noon, to one offset lookup's precision. A bare
// date cannot be passed to Resolve directly because a fixed-UTC anchor lands
// on the adjacent local day in zones far from the prime meridian (UTC+13/+14
// most visibly).
func DateAnchor(zones ZoneResolver, year int, month time.Month, day int, timezoneID string) time.Time {
	naive := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	offset := time.Duration(zones.OffsetMinutes(timezoneID, naive)) * time.Minute
	return naive.Add(-offset)
}

// hoursToDuration converts fractional hours to a duration, rounded to the
// nearest second to avoid nanosecond noise from the float conversion.
func hoursToDuration(h float64) time.Duration {
	secs := int64(math.Round(h * 3600))
	return time.Duration(secs) * time.Second
}
