package pvpower

import (
	"math"
	"testing"

	"github.com/chrissnell/solarsim/pkg/transposition"
)

func sampleWithAC(hour int, acW, poaEff float64) HourlySample {
	return HourlySample{
		Hour:  hour,
		POA:   transposition.PlaneOfArray{Effective: poaEff},
		Power: PowerResult{ACPowerW: acW},
	}
}

func TestSummarize(t *testing.T) {
	panel := testPanel()
	samples := make([]HourlySample, 24)
	for h := 0; h < 24; h++ {
		samples[h] = sampleWithAC(h, 0, 0)
	}
	// A crude bell over the daylight hours.
	for h, ac := range map[int]float64{9: 800, 10: 1600, 11: 2400, 12: 2600, 13: 2400, 14: 1600, 15: 800} {
		samples[h] = sampleWithAC(h, ac, ac/2)
	}

	profile := Summarize(samples, panel, 10)

	if profile.PeakHour != 12 {
		t.Errorf("peak hour = %d, expected 12", profile.PeakHour)
	}
	if profile.PeakACPowerW != 2600 {
		t.Errorf("peak power = %.0f, expected 2600", profile.PeakACPowerW)
	}
	wantEnergy := 800.0 + 1600 + 2400 + 2600 + 2400 + 1600 + 800
	if math.Abs(profile.EnergyWh-wantEnergy) > 1e-9 {
		t.Errorf("energy = %.1f, expected %.1f", profile.EnergyWh, wantEnergy)
	}

	wantCF := wantEnergy / (400 * 10 * 24)
	if math.Abs(profile.CapacityFactor-wantCF) > 1e-12 {
		t.Errorf("capacity factor = %.4f, expected %.4f", profile.CapacityFactor, wantCF)
	}
	if profile.CapacityFactor <= 0 || profile.CapacityFactor >= 1 {
		t.Errorf("capacity factor %.4f outside (0,1)", profile.CapacityFactor)
	}
	if profile.PerformanceRatio <= 0 {
		t.Errorf("performance ratio = %.4f, expected positive", profile.PerformanceRatio)
	}
}

func TestSummarizePeakTieBreaksFirst(t *testing.T) {
	samples := []HourlySample{
		sampleWithAC(0, 100, 50),
		sampleWithAC(1, 500, 250),
		sampleWithAC(2, 500, 250),
		sampleWithAC(3, 200, 100),
	}
	profile := Summarize(samples, testPanel(), 1)
	if profile.PeakHour != 1 {
		t.Errorf("tied peak resolved to hour %d, expected first occurrence 1", profile.PeakHour)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	profile := Summarize(nil, testPanel(), 10)
	if profile.EnergyWh != 0 || profile.PeakACPowerW != 0 {
		t.Errorf("empty profile not zero: %+v", profile)
	}
}

func TestEffectiveInputBifacial(t *testing.T) {
	poa := transposition.PlaneOfArray{Effective: 600, Reflected: 40}

	mono := testPanel()
	if got := EffectiveInput(poa, mono); got != 600 {
		t.Errorf("monofacial effective input = %.1f, expected 600", got)
	}

	bi := testPanel()
	bi.Bifacial = true
	bi.BifacialFactor = 0.7
	if got := EffectiveInput(poa, bi); math.Abs(got-628) > 1e-9 {
		t.Errorf("bifacial effective input = %.1f, expected 628", got)
	}
}
