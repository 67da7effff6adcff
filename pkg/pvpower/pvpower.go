// Package pvpower converts effective plane-of-array irradiance into DC and AC
// electrical power: NOCT cell-temperature model, temperature derating,
// multiplicative system losses, and inverter efficiency with part-load
// derating and capacity clipping. It also assembles the 24-sample daily
// profile and its summary statistics.
package pvpower

import (
	"math"
)

const (
	// stcIrradiance is the standard-test-conditions irradiance, W/m².
	stcIrradiance = 1000.0
	// stcCellTemp is the standard-test-conditions cell temperature, °C.
	stcCellTemp = 25.0
	// noctIrradiance is the reference irradiance for the NOCT rating, W/m².
	noctIrradiance = 800.0
)

// PanelSpec is the electrical and physical datasheet of one module.
type PanelSpec struct {
	WidthM           float64
	HeightM          float64
	RatedPowerW      float64 // nameplate power at STC
	Efficiency       float64 // (0,1]
	TempCoeffPctPerC float64 // power temperature coefficient, %/°C, negative
	NOCTC            float64 // nominal operating cell temperature, °C
	Bifacial         bool
	BifacialFactor   float64 // rear-side gain on reflected light, e.g. 0.7
}

// ArrayOrientation is the mounting geometry of the array.
type ArrayOrientation struct {
	TiltDeg    float64 // 0 = flat, 90 = vertical
	AzimuthDeg float64 // 180 = equator-facing in the northern hemisphere
}

// LossConfig holds the eight independent multiplicative loss fractions, each
// in [0,1).
type LossConfig struct {
	Soiling      float64
	Shading      float64
	Mismatch     float64
	Wiring       float64
	Connections  float64
	Degradation  float64
	Nameplate    float64
	Availability float64
}

// DefaultLosses returns the loss fractions used across the system as the
// standard fixture.
func DefaultLosses() LossConfig {
	return LossConfig{
		Soiling:      0.02,
		Shading:      0.0,
		Mismatch:     0.02,
		Wiring:       0.02,
		Connections:  0.005,
		Degradation:  0.015,
		Nameplate:    0.01,
		Availability: 0.003,
	}
}

// Factor returns the combined system-loss multiplier: the product of (1-loss)
// over all eight fractions.
func (l LossConfig) Factor() float64 {
	factor := 1.0
	for _, loss := range []float64{l.Soiling, l.Shading, l.Mismatch, l.Wiring, l.Connections, l.Degradation, l.Nameplate, l.Availability} {
		factor *= 1 - loss
	}
	return factor
}

// InverterSpec describes the DC→AC conversion stage.
type InverterSpec struct {
	Efficiency  float64 // nominal conversion efficiency, (0,1]
	ACCapacityW float64 // clipping limit; derived from DC capacity when zero
	DCACRatio   float64 // array DC capacity / inverter AC capacity
}

// DefaultInverter returns the standard inverter fixture.
func DefaultInverter() InverterSpec {
	return InverterSpec{Efficiency: 0.96, DCACRatio: 1.2}
}

// ACCapacity returns the inverter's AC clipping limit, deriving it from the
// array DC capacity and the DC:AC ratio when not explicitly configured.
func (inv InverterSpec) ACCapacity(dcCapacityW float64) float64 {
	if inv.ACCapacityW > 0 {
		return inv.ACCapacityW
	}
	ratio := inv.DCACRatio
	if ratio <= 0 {
		ratio = 1.2
	}
	return dcCapacityW / ratio
}

// PowerResult is one pipeline evaluation: the intermediate factors alongside
// the DC and AC power.
type PowerResult struct {
	CellTempC          float64
	TemperatureFactor  float64
	SystemLossFactor   float64
	DCPowerW           float64
	InverterEfficiency float64 // nominal × part-load multiplier
	ACPowerW           float64
	ClippingLossPct    float64 // clipped power as a percentage of DC input
}

// CellTemperature estimates cell temperature from ambient temperature, POA
// irradiance, and the panel's NOCT rating. Wind above 1 m/s derates the
// irradiance-driven heating (stronger convective cooling); the irradiance
// ratio is capped so extreme POA cannot produce runaway temperatures.
func CellTemperature(ambientC, poaWm2, noctC, windMS float64) float64 {
	if poaWm2 <= 0 {
		return ambientC
	}
	ratio := math.Min(poaWm2/noctIrradiance, 1.5)

	windFactor := 1.0
	if windMS > 1 {
		windFactor = math.Max(0.25, 1-0.05*(windMS-1))
	}

	return ambientC + (noctC-20)*ratio*windFactor
}

// TemperatureFactor returns the temperature derating multiplier
// 1 + (coeff/100)·(cellTemp - 25), clamped to [0.5, 1.15]. Values above 1
// arise legitimately in cold climates.
func TemperatureFactor(cellTempC, tempCoeffPctPerC float64) float64 {
	factor := 1 + (tempCoeffPctPerC/100)*(cellTempC-stcCellTemp)
	return math.Max(0.5, math.Min(1.15, factor))
}

// partLoadMultiplier derates inverter efficiency below 20% load with a
// two-segment linear ramp; full nominal efficiency at or above 20% load.
func partLoadMultiplier(loadRatio float64) float64 {
	switch {
	case loadRatio >= 0.20:
		return 1.0
	case loadRatio >= 0.10:
		return 0.95 + 0.05*(loadRatio-0.10)/0.10
	case loadRatio > 0:
		return 0.60 + 0.35*loadRatio/0.10
	default:
		return 0.60
	}
}

// Compute runs one loss-and-conversion pipeline evaluation. effectiveWm2 is
// the incidence-corrected irradiance driving the electrical conversion;
// poaWm2 is the raw plane-of-array irradiance, which is what heats the cell
// (the panel absorbs light the incidence correction writes off electrically).
// Non-positive effective irradiance short-circuits to zero power with unity
// temperature factor and the configured system-loss factor.
func Compute(effectiveWm2, poaWm2 float64, panel PanelSpec, panelCount int, ambientC, windMS float64, losses LossConfig, inv InverterSpec) PowerResult {
	lossFactor := losses.Factor()

	if effectiveWm2 <= 0 {
		return PowerResult{
			CellTempC:          CellTemperature(ambientC, poaWm2, panel.NOCTC, windMS),
			TemperatureFactor:  1.0,
			SystemLossFactor:   lossFactor,
			InverterEfficiency: inv.Efficiency,
		}
	}

	cellTemp := CellTemperature(ambientC, poaWm2, panel.NOCTC, windMS)
	tempFactor := TemperatureFactor(cellTemp, panel.TempCoeffPctPerC)

	dcCapacity := panel.RatedPowerW * float64(panelCount)
	dcPower := panel.RatedPowerW * (effectiveWm2 / stcIrradiance) * tempFactor * lossFactor * float64(panelCount)

	acCapacity := inv.ACCapacity(dcCapacity)
	loadRatio := 0.0
	if acCapacity > 0 {
		loadRatio = dcPower / acCapacity
	}
	invEff := inv.Efficiency * partLoadMultiplier(loadRatio)

	acPower := dcPower * invEff
	clippingLossPct := 0.0
	if acPower > acCapacity {
		if dcPower > 0 {
			clippingLossPct = (acPower - acCapacity) / dcPower * 100
		}
		acPower = acCapacity
	}

	return PowerResult{
		CellTempC:          cellTemp,
		TemperatureFactor:  tempFactor,
		SystemLossFactor:   lossFactor,
		DCPowerW:           dcPower,
		InverterEfficiency: invEff,
		ACPowerW:           acPower,
		ClippingLossPct:    clippingLossPct,
	}
}
