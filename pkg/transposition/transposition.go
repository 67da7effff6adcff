// Package transposition converts horizontal irradiance into irradiance on a
// tilted, oriented panel surface. Beam, diffuse (Perez anisotropic sky), and
// ground-reflected components are computed separately, then an incidence-angle
// reflection correction yields the effective irradiance that drives power
// output.
package transposition

import (
	"math"

	"github.com/chrissnell/solarsim/pkg/irradiance"
	"github.com/chrissnell/solarsim/pkg/solarpos"
)

const (
	// ashraeB0 is the ASHRAE incidence-angle modifier coefficient for
	// uncoated glass.
	ashraeB0 = 0.05

	// diffuseIAM is the hemispherical-average reflection loss applied to
	// the non-beam components.
	diffuseIAM = 0.97
)

// PlaneOfArray is the irradiance incident on the panel surface. Total is the
// pre-modifier sum Beam+Diffuse+Reflected; Effective applies the
// incidence-angle correction and is the quantity fed to the power pipeline.
type PlaneOfArray struct {
	Total     float64
	Beam      float64
	Diffuse   float64
	Reflected float64
	AOIDeg    float64 // angle of incidence between sun ray and panel normal
	Effective float64
}

// AngleOfIncidence returns the angle (degrees) between the sun ray and the
// panel normal, from the standard dot-product formula. The arc-cosine
// argument is clamped so the result stays within [0,180].
func AngleOfIncidence(sunZenithDeg, sunAzimuthDeg, tiltDeg, panelAzimuthDeg float64) float64 {
	zen := sunZenithDeg * math.Pi / 180.0
	tilt := tiltDeg * math.Pi / 180.0
	azDiff := (sunAzimuthDeg - panelAzimuthDeg) * math.Pi / 180.0

	cosAOI := math.Cos(zen)*math.Cos(tilt) + math.Sin(zen)*math.Sin(tilt)*math.Cos(azDiff)
	cosAOI = math.Max(-1, math.Min(1, cosAOI))
	return math.Acos(cosAOI) * 180.0 / math.Pi
}

// IncidenceAngleModifier returns the ASHRAE reflection correction
// 1 - b0·(1/cos(AOI) - 1), clamped to [0,1] and zero at AOI >= 90°.
func IncidenceAngleModifier(aoiDeg float64) float64 {
	if aoiDeg >= 90 {
		return 0
	}
	iam := 1 - ashraeB0*(1/math.Cos(aoiDeg*math.Pi/180.0)-1)
	return math.Max(0, math.Min(1, iam))
}

// Transpose computes plane-of-array irradiance for a panel with the given
// tilt and azimuth (180 = equator-facing in the northern hemisphere) under
// the given horizontal irradiance and sun position. Returns the zero value
// with AOI 90 at night or under zero global irradiance.
func Transpose(h irradiance.Horizontal, sun solarpos.Position, tiltDeg, panelAzimuthDeg, albedo float64) PlaneOfArray {
	if sun.ZenithDeg >= 90 || h.GHI <= 0 {
		return PlaneOfArray{AOIDeg: 90}
	}

	aoi := AngleOfIncidence(sun.ZenithDeg, sun.AzimuthDeg, tiltDeg, panelAzimuthDeg)

	var beam float64
	if aoi < 90 {
		beam = h.DNI * math.Max(0, math.Cos(aoi*math.Pi/180.0))
	}

	diffuse := perezDiffuse(h.DHI, h.DNI, h.AirMass, h.Extraterrestrial, sun.ZenithDeg, aoi, tiltDeg)

	reflected := h.GHI * albedo * (1 - math.Cos(tiltDeg*math.Pi/180.0)) / 2

	total := beam + diffuse + reflected
	effective := beam*IncidenceAngleModifier(aoi) + (diffuse+reflected)*diffuseIAM

	return PlaneOfArray{
		Total:     total,
		Beam:      beam,
		Diffuse:   diffuse,
		Reflected: reflected,
		AOIDeg:    aoi,
		Effective: effective,
	}
}
