package solarpos

import (
	"math"
	"time"
)

// DayArc classifies how the sun's path relates to a target zenith over one
// calendar day.
type DayArc int

const (
	// ArcNormal means the sun crosses the target zenith twice: a rise and a set.
	ArcNormal DayArc = iota
	// ArcAlwaysAbove means the sun never descends to the target zenith
	// (midnight sun relative to that zenith).
	ArcAlwaysAbove
	// ArcAlwaysBelow means the sun never ascends to the target zenith
	// (polar night relative to that zenith).
	ArcAlwaysBelow
)

// Events holds the day's sun events for a coordinate. Sunrise/Sunset are only
// meaningful when Arc == ArcNormal, and CivilDawn/CivilDusk when TwilightArc
// == ArcNormal; the degenerate polar cases are represented explicitly instead
// of producing nonsensical times.
type Events struct {
	SolarNoon time.Time

	Arc     DayArc
	Sunrise time.Time
	Sunset  time.Time

	TwilightArc DayArc
	CivilDawn   time.Time
	CivilDusk   time.Time
}

// DayEvents computes sunrise, sunset, solar noon, and the civil twilight
// bounds for the UTC calendar date of `date` at the coordinate.
func DayEvents(date time.Time, latitude, longitude float64) Events {
	u := date.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	// Evaluate declination and equation of time at approximate solar noon
	// rather than midnight; over half a day the declination can shift a
	// few arcminutes, which matters near the polar boundaries.
	b := basis(midnight.Add(12 * time.Hour))

	noonMin := 720 - 4*longitude - b.eqTimeMin
	noon := midnight.Add(minutesToDuration(noonMin))

	ev := Events{SolarNoon: noon}

	ev.Arc, ev.Sunrise, ev.Sunset = crossings(midnight, noonMin, latitude, b.declinationDeg, SunriseZenith)
	ev.TwilightArc, ev.CivilDawn, ev.CivilDusk = crossings(midnight, noonMin, latitude, b.declinationDeg, CivilTwilightZenith)

	return ev
}

// crossings solves for the two instants at which the sun passes the target
// zenith, via cos(HA) = cos(z)/(cos(lat)cos(dec)) - tan(lat)tan(dec).
// |cosHA| > 1 means the day has no crossing: above 1 the sun never climbs to
// the zenith, below -1 it never descends to it.
func crossings(midnight time.Time, noonMin, latitude, declinationDeg, targetZenith float64) (DayArc, time.Time, time.Time) {
	latRad := degToRad(latitude)
	declRad := degToRad(declinationDeg)

	cosHA := math.Cos(degToRad(targetZenith))/(math.Cos(latRad)*math.Cos(declRad)) -
		math.Tan(latRad)*math.Tan(declRad)

	if cosHA > 1 {
		return ArcAlwaysBelow, time.Time{}, time.Time{}
	}
	if cosHA < -1 {
		return ArcAlwaysAbove, time.Time{}, time.Time{}
	}

	haDeg := radToDeg(math.Acos(cosHA))
	haMin := 4 * haDeg // 4 minutes of time per degree of hour angle

	rise := midnight.Add(minutesToDuration(noonMin - haMin))
	set := midnight.Add(minutesToDuration(noonMin + haMin))
	return ArcNormal, rise, set
}

// DayLength returns the duration the sun spends above the sunrise zenith.
// Zero for polar night, 24h for midnight sun.
func (e Events) DayLength() time.Duration {
	switch e.Arc {
	case ArcAlwaysAbove:
		return 24 * time.Hour
	case ArcAlwaysBelow:
		return 0
	default:
		return e.Sunset.Sub(e.Sunrise)
	}
}

// FormatLocal renders an event instant as a local wall-clock string in the
// given location. Returns an empty string for the zero time (degenerate
// polar events).
func FormatLocal(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("3:04 PM")
}

// minutesToDuration converts fractional minutes to a duration, rounded to the
// nearest second.
func minutesToDuration(m float64) time.Duration {
	return time.Duration(math.Round(m*60)) * time.Second
}
