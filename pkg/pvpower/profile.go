package pvpower

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/chrissnell/solarsim/pkg/irradiance"
	"github.com/chrissnell/solarsim/pkg/solarpos"
	"github.com/chrissnell/solarsim/pkg/transposition"
)

// HourlySample is one evaluation of the full per-hour pipeline.
type HourlySample struct {
	Hour       int                        `json:"hour"`       // 0..23
	LocalHour  float64                    `json:"local_hour"` // sampled local wall-clock hour
	Instant    time.Time                  `json:"instant"`    // resolved absolute instant (UTC)
	Sun        solarpos.Position          `json:"sun"`
	Horizontal irradiance.Horizontal      `json:"horizontal"`
	POA        transposition.PlaneOfArray `json:"poa"`
	Power      PowerResult                `json:"power"`
}

// DailyProfile is the assembled 24-sample day with its summary statistics.
type DailyProfile struct {
	Samples          []HourlySample `json:"samples"`
	PeakACPowerW     float64        `json:"peak_ac_power_w"`
	PeakHour         int            `json:"peak_hour"`
	EnergyWh         float64        `json:"energy_wh"`
	CapacityFactor   float64        `json:"capacity_factor"`
	PerformanceRatio float64        `json:"performance_ratio"`
}

// EffectiveInput returns the irradiance driving the electrical pipeline for
// the panel: the incidence-corrected POA irradiance, plus rear-side gain on
// the ground-reflected component for bifacial modules.
func EffectiveInput(poa transposition.PlaneOfArray, panel PanelSpec) float64 {
	eff := poa.Effective
	if panel.Bifacial && panel.BifacialFactor > 0 {
		eff += poa.Reflected * panel.BifacialFactor
	}
	return eff
}

// Summarize assembles the daily profile from per-hour samples. Peak ties
// resolve to the first occurrence; energy integration assumes unit-hour
// sampling; capacity factor is against continuous nameplate output;
// performance ratio weights nameplate output by received POA irradiance.
func Summarize(samples []HourlySample, panel PanelSpec, panelCount int) DailyProfile {
	profile := DailyProfile{Samples: samples}
	if len(samples) == 0 {
		return profile
	}

	ac := make([]float64, len(samples))
	poaEff := make([]float64, len(samples))
	for i, s := range samples {
		ac[i] = s.Power.ACPowerW
		poaEff[i] = s.POA.Effective
	}

	peakIdx := floats.MaxIdx(ac) // first index on ties
	profile.PeakACPowerW = ac[peakIdx]
	profile.PeakHour = samples[peakIdx].Hour
	profile.EnergyWh = floats.Sum(ac)

	nameplate := panel.RatedPowerW * float64(panelCount)
	if nameplate > 0 {
		profile.CapacityFactor = profile.EnergyWh / (nameplate * float64(len(samples)))

		// Theoretical output had the array converted every received W/m²
		// at STC efficiency: nameplate × POA insolation / 1000.
		theoretical := nameplate * floats.Sum(poaEff) / stcIrradiance
		if theoretical > 0 {
			profile.PerformanceRatio = profile.EnergyWh / theoretical
		}
	}

	return profile
}
