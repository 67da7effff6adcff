// Package irradiance implements the Ineichen-Perez clear-sky model, producing
// mutually consistent global, direct-normal, and diffuse horizontal
// irradiance for a given sun zenith angle, site altitude, and Linke
// turbidity.
package irradiance

import (
	"math"
	"time"

	"github.com/chrissnell/solarsim/pkg/atmosphere"
)

// Horizontal carries clear-sky irradiance on the horizontal plane plus the
// atmospheric quantities it was derived from. All irradiances are W/m² and
// non-negative; GHI == DNI·cos(zenith) + DHI after reconciliation.
type Horizontal struct {
	GHI              float64 // global horizontal irradiance
	DNI              float64 // direct normal irradiance
	DHI              float64 // diffuse horizontal irradiance
	Extraterrestrial float64 // top-of-atmosphere normal irradiance for the day
	AirMass          float64 // relative optical path length; +Inf at night
	ClearnessIndex   float64 // GHI / (extraterrestrial horizontal), [0,1]
}

// ClearSky computes clear-sky horizontal irradiance for the instant (used for
// day-of-year seasonality) and sun zenith angle. Returns the all-zero night
// value whenever the sun is at or below the horizon.
func ClearSky(t time.Time, zenithDeg, altitudeM, linkeTurbidity float64) Horizontal {
	if zenithDeg >= 90 {
		return Horizontal{AirMass: math.Inf(1)}
	}

	n := atmosphere.DayOfYear(t)
	e0 := atmosphere.Extraterrestrial(n)
	cosZen := math.Cos(zenithDeg * math.Pi / 180.0)
	am := atmosphere.AirMass(zenithDeg)
	fh1, fh2 := atmosphere.AltitudeCorrections(altitudeM)

	dni := e0 * atmosphere.BeamTransmittance(am, linkeTurbidity, altitudeM)

	// Global correlation with altitude-dependent coefficients.
	cg1 := 5.09e-5*altitudeM + 0.868
	cg2 := 3.92e-5*altitudeM + 0.0387
	ghi := cg1 * e0 * cosZen *
		math.Exp(-cg2*am*(fh1+fh2*(linkeTurbidity-1))) *
		math.Exp(0.01*math.Pow(am, 1.8))

	// Diffuse is the residual, floored so high turbidity cannot drive it to
	// an unphysical near-zero value.
	dhi := ghi - dni*cosZen
	if floor := atmosphere.MinimumDiffuse(e0 * cosZen); dhi < floor {
		dhi = floor
	}

	dni = math.Max(0, dni)
	dhi = math.Max(0, dhi)

	// Reconcile: global is the sum of the clamped components, keeping the
	// three quantities mutually consistent.
	ghi = dni*cosZen + dhi

	kt := 0.0
	if horizExtra := e0 * cosZen; horizExtra > 0 {
		kt = math.Max(0, math.Min(1, ghi/horizExtra))
	}

	return Horizontal{
		GHI:              ghi,
		DNI:              dni,
		DHI:              dhi,
		Extraterrestrial: e0,
		AirMass:          am,
		ClearnessIndex:   kt,
	}
}

// Night reports whether the value is the degenerate below-horizon result.
func (h Horizontal) Night() bool {
	return h.GHI == 0 && h.DNI == 0 && h.DHI == 0
}
