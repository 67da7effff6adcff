// Package solarpos computes the sun's apparent position and the daily rise,
// set, noon, and civil-twilight events for a geographic coordinate, using the
// standard NOAA/Meeus multi-term solar position algorithm. Angles cross the
// API boundary in degrees; trigonometry runs in radians internally.
package solarpos

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// SunriseZenith is the zenith angle defining sunrise/sunset: 90°50',
	// accounting for atmospheric refraction plus the sun's apparent radius.
	SunriseZenith = 90.833

	// CivilTwilightZenith is the zenith angle bounding civil twilight
	// (sun 6° below the horizon).
	CivilTwilightZenith = 96.0
)

// Position is the sun's apparent position at one instant.
type Position struct {
	ElevationDeg   float64 // angle above the horizon; negative when set
	AzimuthDeg     float64 // compass bearing of the sun, [0,360), 180 = due south
	ZenithDeg      float64 // 90 - elevation
	DeclinationDeg float64
	HourAngleDeg   float64
	BelowHorizon   bool
}

// degToRad converts an angle from degrees to radians
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// radToDeg converts an angle from radians to degrees
func radToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// fixAngle normalizes an angle to the range [0, 360) degrees
func fixAngle(angle float64) float64 {
	return angle - 360.0*math.Floor(angle/360.0)
}

// julianCenturies returns Julian centuries since J2000.0 for the instant.
func julianCenturies(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	return (jd - 2451545.0) / 36525.0
}

// solarBasis holds the per-instant orbital quantities shared by the position
// and event calculations.
type solarBasis struct {
	declinationDeg float64
	eqTimeMin      float64
}

// basis evaluates the NOAA solar coordinate series at the instant: mean
// longitude and anomaly, orbital eccentricity, equation of center, apparent
// longitude, corrected obliquity, then declination and equation of time.
func basis(t time.Time) solarBasis {
	T := julianCenturies(t)

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)

	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	trueLong := L0 + C

	omega := 125.04 - 1934.136*T
	lambda := trueLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))

	decl := radToDeg(math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(lambda))))

	y := math.Tan(degToRad(eps)/2) * math.Tan(degToRad(eps)/2)
	eqTimeMin := radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4

	return solarBasis{declinationDeg: decl, eqTimeMin: eqTimeMin}
}

// Compute returns the sun's apparent position at the instant for the
// coordinate (degrees; west longitude negative).
func Compute(t time.Time, latitude, longitude float64) Position {
	b := basis(t)

	u := t.UTC()
	utcMin := float64(u.Hour()*60+u.Minute()) + float64(u.Second())/60.0

	// True solar time, offset by 4 min per degree of longitude plus the
	// equation of time; hour angle is zero at local solar noon.
	tst := utcMin + 4*longitude + b.eqTimeMin
	ha := tst/4 - 180
	if ha < -180 {
		ha += 360
	} else if ha > 180 {
		ha -= 360
	}

	latRad := degToRad(latitude)
	declRad := degToRad(b.declinationDeg)
	haRad := degToRad(ha)

	cosZen := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(haRad)
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zenRad := math.Acos(cosZen)
	zenDeg := radToDeg(zenRad)
	elevDeg := 90 - zenDeg

	// Azimuth from the spherical triangle; the sign of the hour angle
	// resolves the morning/afternoon ambiguity of the arc-cosine.
	var azDeg float64
	sinZen := math.Sin(zenRad)
	if sinZen > 1e-9 {
		cosAz := (math.Sin(declRad) - math.Sin(latRad)*cosZen) / (math.Cos(latRad) * sinZen)
		cosAz = math.Max(-1, math.Min(1, cosAz))
		azDeg = radToDeg(math.Acos(cosAz))
		if ha > 0 {
			azDeg = 360 - azDeg
		}
	} else {
		// Sun at the zenith (or nadir): azimuth undefined, report 0.
		azDeg = 0
	}

	return Position{
		ElevationDeg:   elevDeg,
		AzimuthDeg:     fixAngle(azDeg),
		ZenithDeg:      zenDeg,
		DeclinationDeg: b.declinationDeg,
		HourAngleDeg:   ha,
		BelowHorizon:   elevDeg < 0,
	}
}
