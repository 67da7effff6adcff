package transposition

import (
	"math"
	"testing"
	"time"

	"github.com/chrissnell/solarsim/pkg/irradiance"
	"github.com/chrissnell/solarsim/pkg/solarpos"
)

func TestNightReturnsZero(t *testing.T) {
	night := irradiance.Horizontal{AirMass: math.Inf(1)}
	sun := solarpos.Position{ZenithDeg: 95, ElevationDeg: -5, BelowHorizon: true}

	poa := Transpose(night, sun, 35, 180, 0.2)
	if poa.Total != 0 || poa.Beam != 0 || poa.Diffuse != 0 || poa.Reflected != 0 || poa.Effective != 0 {
		t.Errorf("night transposition not zero: %+v", poa)
	}
	if poa.AOIDeg != 90 {
		t.Errorf("night AOI = %.1f, expected 90", poa.AOIDeg)
	}
}

func TestAngleOfIncidence(t *testing.T) {
	tests := []struct {
		name                       string
		sunZenith, sunAzimuth      float64
		tilt, panelAzimuth         float64
		want, tolerance            float64
	}{
		{"sun on panel normal", 35, 180, 35, 180, 0, 1e-9},
		{"flat panel AOI equals zenith", 41.3, 222, 0, 180, 41.3, 1e-9},
		{"overhead sun tilted panel", 0, 0, 30, 180, 30, 1e-9},
		{"sun behind panel", 60, 0, 40, 180, 100, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aoi := AngleOfIncidence(tt.sunZenith, tt.sunAzimuth, tt.tilt, tt.panelAzimuth)
			if math.Abs(aoi-tt.want) > tt.tolerance {
				t.Errorf("AOI = %.3f, expected %.3f ± %.3f", aoi, tt.want, tt.tolerance)
			}
			if aoi < 0 || aoi > 180 {
				t.Errorf("AOI %.3f outside [0,180]", aoi)
			}
		})
	}
}

func TestIncidenceAngleModifier(t *testing.T) {
	if iam := IncidenceAngleModifier(0); iam != 1 {
		t.Errorf("IAM(0) = %.4f, expected 1", iam)
	}
	if iam := IncidenceAngleModifier(90); iam != 0 {
		t.Errorf("IAM(90) = %.4f, expected 0", iam)
	}
	if iam := IncidenceAngleModifier(120); iam != 0 {
		t.Errorf("IAM(120) = %.4f, expected 0", iam)
	}

	prev := 1.0
	for aoi := 0.0; aoi < 90.0; aoi += 5 {
		iam := IncidenceAngleModifier(aoi)
		if iam < 0 || iam > 1 {
			t.Errorf("IAM(%.0f) = %.4f outside [0,1]", aoi, iam)
		}
		if iam > prev+1e-12 {
			t.Errorf("IAM should not increase with AOI: IAM(%.0f) = %.4f > %.4f", aoi, iam, prev)
		}
		prev = iam
	}
}

func TestPerezBinSearch(t *testing.T) {
	// Bin boundaries at 1.065, 1.23, 1.5, 1.95, 2.8, 4.5, 6.2.
	tests := []struct {
		epsilon float64
		wantF11 float64
	}{
		{1.0, -0.008},
		{1.064, -0.008},
		{1.065, 0.130},
		{1.4, 0.330},
		{2.0, 0.873},
		{5.0, 1.060},
		{6.2, 0.678},
		{50.0, 0.678},
	}
	for _, tt := range tests {
		if bin := perezBinFor(tt.epsilon); bin.f11 != tt.wantF11 {
			t.Errorf("perezBinFor(%.3f).f11 = %.3f, expected %.3f", tt.epsilon, bin.f11, tt.wantF11)
		}
	}
}

func TestSanFranciscoSolsticeNoon(t *testing.T) {
	// 35° tilt, south-facing panel at SF solar noon on the summer
	// solstice: POA total must land in [700, 1200] W/m².
	at := time.Date(2024, 6, 21, 20, 12, 0, 0, time.UTC)
	sun := solarpos.Compute(at, 37.7749, -122.4194)
	h := irradiance.ClearSky(at, sun.ZenithDeg, 0, 3.0)

	poa := Transpose(h, sun, 35, 180, 0.2)

	if poa.Total < 700 || poa.Total > 1200 {
		t.Errorf("POA total = %.1f, expected in [700, 1200]", poa.Total)
	}
	if poa.Effective <= 0 || poa.Effective > poa.Total {
		t.Errorf("effective %.1f should be positive and below total %.1f", poa.Effective, poa.Total)
	}
	if diff := math.Abs(poa.Total - (poa.Beam + poa.Diffuse + poa.Reflected)); diff > 1e-9 {
		t.Errorf("total %.4f != beam+diffuse+reflected", poa.Total)
	}
}

func TestComponentsNonNegative(t *testing.T) {
	at := time.Date(2024, 3, 20, 16, 0, 0, 0, time.UTC)
	sun := solarpos.Compute(at, 37.7749, -122.4194)
	h := irradiance.ClearSky(at, sun.ZenithDeg, 0, 3.0)

	for tilt := 0.0; tilt <= 90.0; tilt += 15 {
		for az := 0.0; az < 360.0; az += 45 {
			poa := Transpose(h, sun, tilt, az, 0.2)
			if poa.Beam < 0 || poa.Diffuse < 0 || poa.Reflected < 0 || poa.Total < 0 || poa.Effective < 0 {
				t.Errorf("tilt %.0f az %.0f: negative component %+v", tilt, az, poa)
			}
		}
	}
}

func TestReflectedGrowsWithTilt(t *testing.T) {
	at := time.Date(2024, 6, 21, 20, 12, 0, 0, time.UTC)
	sun := solarpos.Compute(at, 37.7749, -122.4194)
	h := irradiance.ClearSky(at, sun.ZenithDeg, 0, 3.0)

	flat := Transpose(h, sun, 0, 180, 0.2)
	steep := Transpose(h, sun, 60, 180, 0.2)

	if flat.Reflected != 0 {
		t.Errorf("flat panel sees reflected %.2f, expected 0", flat.Reflected)
	}
	if steep.Reflected <= 0 {
		t.Errorf("tilted panel reflected %.2f, expected > 0", steep.Reflected)
	}

	// Doubling albedo doubles the reflected component.
	brighter := Transpose(h, sun, 60, 180, 0.4)
	if math.Abs(brighter.Reflected-2*steep.Reflected) > 1e-9 {
		t.Errorf("reflected not linear in albedo: %.3f vs 2×%.3f", brighter.Reflected, steep.Reflected)
	}
}

func TestNorthFacingPanelBeamZero(t *testing.T) {
	// At SF solstice noon the sun is due south and high; a vertical
	// north-facing panel must see no beam.
	at := time.Date(2024, 6, 21, 20, 12, 0, 0, time.UTC)
	sun := solarpos.Compute(at, 37.7749, -122.4194)
	h := irradiance.ClearSky(at, sun.ZenithDeg, 0, 3.0)

	poa := Transpose(h, sun, 90, 0, 0.2)
	if poa.Beam != 0 {
		t.Errorf("north-facing vertical panel beam = %.2f, expected 0", poa.Beam)
	}
	// It still receives diffuse and reflected light.
	if poa.Total <= 0 {
		t.Errorf("north-facing panel total = %.2f, expected > 0", poa.Total)
	}
}
