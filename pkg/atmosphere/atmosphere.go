// Package atmosphere provides the stateless scalar correlations the clear-sky
// irradiance model is built from: relative air mass, extraterrestrial
// irradiance, beam transmittance, and the diffuse floor.
package atmosphere

import (
	"math"
	"time"
)

// SolarConstant is the mean solar irradiance at the top of the atmosphere in W/m².
const SolarConstant = 1361.0

// DiffuseFloorFraction is the minimum share of horizontal extraterrestrial
// irradiance attributed to diffuse sky radiation. Keeps the derived diffuse
// component from collapsing to zero at high turbidity.
const DiffuseFloorFraction = 0.10

// scaleHeightM is the atmospheric pressure scale height used for altitude
// correction of beam attenuation.
const scaleHeightM = 8000.0

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// DayOfYear returns the 1-based day of year for the instant's UTC date.
func DayOfYear(t time.Time) int {
	return t.UTC().YearDay()
}

// Extraterrestrial returns the normal-incidence irradiance at the top of the
// atmosphere (W/m²), corrected for Earth-Sun distance eccentricity over the
// year. Perihelion falls in early January, so the correction peaks there.
func Extraterrestrial(dayOfYear int) float64 {
	return SolarConstant * (1 + 0.033*math.Cos(degToRad(360.0*(float64(dayOfYear)-3)/365.0)))
}

// AirMass returns the relative optical path length through the atmosphere for
// the given solar zenith angle, using the Kasten-Young approximation. Returns
// +Inf at or below the horizon (zenith >= 90°) and never less than 1.
func AirMass(zenithDeg float64) float64 {
	if zenithDeg >= 90 {
		return math.Inf(1)
	}
	am := 1.0 / (math.Cos(degToRad(zenithDeg)) + 0.50572*math.Pow(96.07995-zenithDeg, -1.6364))
	if am < 1 {
		am = 1
	}
	return am
}

// BeamTransmittance returns the fraction of extraterrestrial normal irradiance
// surviving direct transmission, from an exponential attenuation law
// parameterized by air mass, Linke turbidity, and site altitude.
func BeamTransmittance(airMass, linkeTurbidity, altitudeM float64) float64 {
	if math.IsInf(airMass, 1) {
		return 0
	}
	return 0.7 * math.Exp(-0.027*airMass*linkeTurbidity*math.Exp(-altitudeM/scaleHeightM))
}

// MinimumDiffuse returns the diffuse floor for a given horizontal
// extraterrestrial irradiance.
func MinimumDiffuse(extraterrestrialHorizontal float64) float64 {
	if extraterrestrialHorizontal <= 0 {
		return 0
	}
	return DiffuseFloorFraction * extraterrestrialHorizontal
}

// AltitudeCorrections returns the Ineichen altitude correction factors fh1
// (beam) and fh2 (turbidity weighting) for the site altitude.
func AltitudeCorrections(altitudeM float64) (fh1, fh2 float64) {
	fh1 = math.Exp(-altitudeM / scaleHeightM)
	fh2 = math.Exp(-altitudeM / 1250.0)
	return fh1, fh2
}
