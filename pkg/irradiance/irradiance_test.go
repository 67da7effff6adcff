package irradiance

import (
	"math"
	"testing"
	"time"
)

var midsummer = time.Date(2024, 6, 21, 20, 0, 0, 0, time.UTC)

func TestNightInvariant(t *testing.T) {
	for _, zen := range []float64{90, 90.5, 95, 120, 180} {
		h := ClearSky(midsummer, zen, 0, 3.0)
		if h.GHI != 0 || h.DNI != 0 || h.DHI != 0 {
			t.Errorf("zenith %.1f: irradiance not zero: %+v", zen, h)
		}
		if !math.IsInf(h.AirMass, 1) {
			t.Errorf("zenith %.1f: air mass = %v, expected +Inf", zen, h.AirMass)
		}
		if !h.Night() {
			t.Errorf("zenith %.1f: Night() = false", zen)
		}
	}
}

func TestConsistencyInvariant(t *testing.T) {
	for zen := 0.0; zen < 90.0; zen += 5.0 {
		h := ClearSky(midsummer, zen, 100, 3.0)
		cosZen := math.Cos(zen * math.Pi / 180)
		if diff := math.Abs(h.GHI - (h.DNI*cosZen + h.DHI)); diff > 1e-9 {
			t.Errorf("zenith %.0f: GHI %.4f != DNI·cosZ + DHI %.4f", zen, h.GHI, h.DNI*cosZen+h.DHI)
		}
		if h.DHI > h.GHI+1e-9 {
			t.Errorf("zenith %.0f: DHI %.2f exceeds GHI %.2f", zen, h.DHI, h.GHI)
		}
	}
}

func TestBounds(t *testing.T) {
	for zen := 0.0; zen < 90.0; zen += 3.0 {
		for _, tl := range []float64{2.0, 3.5, 5.0} {
			h := ClearSky(midsummer, zen, 0, tl)
			if h.ClearnessIndex < 0 || h.ClearnessIndex > 1 {
				t.Errorf("zenith %.0f TL %.1f: clearness index %.4f outside [0,1]", zen, tl, h.ClearnessIndex)
			}
			if h.AirMass < 1 {
				t.Errorf("zenith %.0f: air mass %.4f < 1", zen, h.AirMass)
			}
			if h.GHI < 0 || h.DNI < 0 || h.DHI < 0 {
				t.Errorf("zenith %.0f TL %.1f: negative irradiance %+v", zen, tl, h)
			}
		}
	}
}

func TestOverheadMagnitudes(t *testing.T) {
	// Near-overhead clear sky should deliver roughly 900-1100 W/m² global
	// and DNI in the 800-1000 W/m² band at sea level, TL=3.
	h := ClearSky(midsummer, 15.0, 0, 3.0)
	if h.GHI < 800 || h.GHI > 1150 {
		t.Errorf("GHI = %.1f, expected in [800, 1150]", h.GHI)
	}
	if h.DNI < 700 || h.DNI > 1050 {
		t.Errorf("DNI = %.1f, expected in [700, 1050]", h.DNI)
	}
	if h.DHI <= 0 {
		t.Errorf("DHI = %.1f, expected positive", h.DHI)
	}
}

func TestTurbidityShiftsBeamToDiffuse(t *testing.T) {
	clear := ClearSky(midsummer, 30, 0, 2.0)
	hazy := ClearSky(midsummer, 30, 0, 5.0)

	if hazy.DNI >= clear.DNI {
		t.Errorf("DNI should fall with turbidity: %.1f >= %.1f", hazy.DNI, clear.DNI)
	}
	if hazy.GHI >= clear.GHI {
		t.Errorf("GHI should fall with turbidity: %.1f >= %.1f", hazy.GHI, clear.GHI)
	}
}

func TestAltitudeIncreasesIrradiance(t *testing.T) {
	sea := ClearSky(midsummer, 30, 0, 3.0)
	alpine := ClearSky(midsummer, 30, 2500, 3.0)

	if alpine.DNI <= sea.DNI {
		t.Errorf("DNI should rise with altitude: %.1f <= %.1f", alpine.DNI, sea.DNI)
	}
}

func TestDiffuseFloorAtHighTurbidity(t *testing.T) {
	// Extreme turbidity drives the residual diffuse negative before the
	// floor: the floor must hold it at 10% of horizontal extraterrestrial.
	h := ClearSky(midsummer, 20, 0, 7.0)
	cosZen := math.Cos(20 * math.Pi / 180)
	floor := 0.10 * h.Extraterrestrial * cosZen
	if h.DHI < floor-1e-9 {
		t.Errorf("DHI %.2f below floor %.2f", h.DHI, floor)
	}
}
