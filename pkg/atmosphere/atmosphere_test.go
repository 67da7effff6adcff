package atmosphere

import (
	"math"
	"testing"
	"time"
)

func TestAirMass(t *testing.T) {
	tests := []struct {
		name      string
		zenithDeg float64
		min, max  float64
	}{
		{"overhead sun", 0, 1.0, 1.01},
		{"mid-morning", 48.2, 1.45, 1.55},
		{"low sun", 80, 5.0, 6.5},
		{"near horizon", 89, 25, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			am := AirMass(tt.zenithDeg)
			if am < tt.min || am > tt.max {
				t.Errorf("AirMass(%.1f) = %.3f, expected in [%.2f, %.2f]", tt.zenithDeg, am, tt.min, tt.max)
			}
		})
	}
}

func TestAirMassBelowHorizon(t *testing.T) {
	for _, z := range []float64{90, 95, 120, 180} {
		if am := AirMass(z); !math.IsInf(am, 1) {
			t.Errorf("AirMass(%.0f) = %v, expected +Inf", z, am)
		}
	}
}

func TestAirMassNeverBelowOne(t *testing.T) {
	for z := 0.0; z < 90.0; z += 0.5 {
		if am := AirMass(z); am < 1 {
			t.Errorf("AirMass(%.1f) = %.4f < 1", z, am)
		}
	}
}

func TestExtraterrestrialSeasonalSwing(t *testing.T) {
	// Earth is closest to the sun in early January: irradiance there must
	// exceed the July value, both within ~3.3% of the solar constant.
	jan := Extraterrestrial(3)
	jul := Extraterrestrial(185)

	if jan <= jul {
		t.Errorf("January extraterrestrial %.1f not greater than July %.1f", jan, jul)
	}
	if jan > SolarConstant*1.034 || jan < SolarConstant {
		t.Errorf("January extraterrestrial %.1f outside expected band", jan)
	}
	if jul < SolarConstant*0.966 || jul > SolarConstant {
		t.Errorf("July extraterrestrial %.1f outside expected band", jul)
	}
}

func TestBeamTransmittance(t *testing.T) {
	// More air mass or more turbidity means less transmission.
	clear := BeamTransmittance(1.0, 2.0, 0)
	hazy := BeamTransmittance(1.0, 5.0, 0)
	oblique := BeamTransmittance(3.0, 2.0, 0)

	if clear <= hazy {
		t.Errorf("transmittance should fall with turbidity: %.3f <= %.3f", clear, hazy)
	}
	if clear <= oblique {
		t.Errorf("transmittance should fall with air mass: %.3f <= %.3f", clear, oblique)
	}
	if clear <= 0 || clear >= 1 {
		t.Errorf("transmittance %.3f outside (0,1)", clear)
	}

	// Altitude thins the attenuating column.
	if lowland, highland := BeamTransmittance(1.5, 3.0, 0), BeamTransmittance(1.5, 3.0, 3000); highland <= lowland {
		t.Errorf("transmittance should rise with altitude: %.3f <= %.3f", highland, lowland)
	}

	if bt := BeamTransmittance(math.Inf(1), 2.0, 0); bt != 0 {
		t.Errorf("BeamTransmittance at infinite air mass = %.3f, expected 0", bt)
	}
}

func TestDayOfYear(t *testing.T) {
	if d := DayOfYear(time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)); d != 1 {
		t.Errorf("DayOfYear(Jan 1) = %d", d)
	}
	if d := DayOfYear(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)); d != 366 {
		t.Errorf("DayOfYear(Dec 31 leap year) = %d", d)
	}
}

func TestMinimumDiffuse(t *testing.T) {
	if md := MinimumDiffuse(1000); md != 100 {
		t.Errorf("MinimumDiffuse(1000) = %.1f, expected 100", md)
	}
	if md := MinimumDiffuse(-50); md != 0 {
		t.Errorf("MinimumDiffuse(-50) = %.1f, expected 0", md)
	}
}
