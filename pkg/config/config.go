// Package config defines the structured configuration records consumed by the
// simulation core and its surrounding daemon, with defaults, validation, and
// a YAML file provider.
package config

import (
	"fmt"
)

// ConfigData represents the complete daemon configuration.
type ConfigData struct {
	Simulation SimulationData `json:"simulation"`
	HTTP       HTTPData       `json:"http,omitempty"`
	Log        LogData        `json:"log,omitempty"`
}

// SimulationData groups every numeric input of one simulation scenario.
type SimulationData struct {
	Site     SiteData     `json:"site"`
	Panel    PanelData    `json:"panel"`
	Array    ArrayData    `json:"array"`
	Losses   LossData     `json:"losses"`
	Inverter InverterData `json:"inverter"`
}

// SiteData locates the installation and its atmospheric environment.
type SiteData struct {
	Latitude  float64 `json:"latitude"`  // degrees, -90..90
	Longitude float64 `json:"longitude"` // degrees, -180..180
	AltitudeM float64 `json:"altitude_m"`
	Timezone  string  `json:"timezone"` // IANA identifier
	Turbidity float64 `json:"turbidity"`
	Albedo    float64 `json:"albedo"`
	AmbientC  float64 `json:"ambient_c"`
	WindMS    float64 `json:"wind_ms"`
}

// PanelData is the module datasheet.
type PanelData struct {
	WidthM           float64 `json:"width_m"`
	HeightM          float64 `json:"height_m"`
	RatedPowerW      float64 `json:"rated_power_w"`
	Efficiency       float64 `json:"efficiency"`
	TempCoeffPctPerC float64 `json:"temp_coeff_pct_per_c"`
	NOCTC            float64 `json:"noct_c"`
	Bifacial         bool    `json:"bifacial,omitempty"`
	BifacialFactor   float64 `json:"bifacial_factor,omitempty"`
}

// ArrayData is the mounting geometry and module count.
type ArrayData struct {
	TiltDeg    float64 `json:"tilt_deg"`
	AzimuthDeg float64 `json:"azimuth_deg"` // 180 = equator-facing (N hemisphere)
	PanelCount int     `json:"panel_count"`
}

// LossData holds the eight independent loss fractions, each in [0,1).
type LossData struct {
	Soiling      float64 `json:"soiling"`
	Shading      float64 `json:"shading"`
	Mismatch     float64 `json:"mismatch"`
	Wiring       float64 `json:"wiring"`
	Connections  float64 `json:"connections"`
	Degradation  float64 `json:"degradation"`
	Nameplate    float64 `json:"nameplate"`
	Availability float64 `json:"availability"`
}

// InverterData describes the DC→AC stage.
type InverterData struct {
	Efficiency  float64 `json:"efficiency"`
	ACCapacityW float64 `json:"ac_capacity_w,omitempty"`
	DCACRatio   float64 `json:"dc_ac_ratio"`
}

// HTTPData configures the REST controller.
type HTTPData struct {
	ListenAddr string `json:"listen_addr"`
	CORSOrigin string `json:"cors_origin,omitempty"`
}

// LogData configures log output for the daemon.
type LogData struct {
	File       string `json:"file,omitempty"` // rotate-managed log file; stderr when empty
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
}

// DefaultSimulation returns a complete simulation scenario with the standard
// fixture values: a 10-panel, 35°-tilt south-facing residential array in San
// Francisco.
func DefaultSimulation() SimulationData {
	return SimulationData{
		Site: SiteData{
			Latitude:  37.7749,
			Longitude: -122.4194,
			AltitudeM: 16,
			Timezone:  "America/Los_Angeles",
			Turbidity: 3.0,
			Albedo:    0.2,
			AmbientC:  18,
			WindMS:    3,
		},
		Panel: PanelData{
			WidthM:           1.13,
			HeightM:          1.76,
			RatedPowerW:      400,
			Efficiency:       0.201,
			TempCoeffPctPerC: -0.35,
			NOCTC:            45,
		},
		Array: ArrayData{
			TiltDeg:    35,
			AzimuthDeg: 180,
			PanelCount: 10,
		},
		Losses: LossData{
			Soiling:      0.02,
			Shading:      0.0,
			Mismatch:     0.02,
			Wiring:       0.02,
			Connections:  0.005,
			Degradation:  0.015,
			Nameplate:    0.01,
			Availability: 0.003,
		},
		Inverter: InverterData{
			Efficiency: 0.96,
			DCACRatio:  1.2,
		},
	}
}

// Validate rejects out-of-range configuration before it can enter the
// pipeline. The pipeline itself only clamps physically derived intermediate
// quantities, never raw configuration.
func (s *SimulationData) Validate() error {
	if s.Site.Latitude < -90 || s.Site.Latitude > 90 {
		return fmt.Errorf("latitude %.4f outside [-90, 90]", s.Site.Latitude)
	}
	if s.Site.Longitude < -180 || s.Site.Longitude > 180 {
		return fmt.Errorf("longitude %.4f outside [-180, 180]", s.Site.Longitude)
	}
	if s.Site.AltitudeM < 0 {
		return fmt.Errorf("altitude %.1f m must be >= 0", s.Site.AltitudeM)
	}
	if s.Site.Albedo < 0 || s.Site.Albedo > 1 {
		return fmt.Errorf("albedo %.3f outside [0, 1]", s.Site.Albedo)
	}
	if s.Site.Turbidity < 1 || s.Site.Turbidity > 10 {
		return fmt.Errorf("turbidity %.2f outside [1, 10]", s.Site.Turbidity)
	}

	if s.Panel.RatedPowerW <= 0 {
		return fmt.Errorf("panel rated power %.1f W must be positive", s.Panel.RatedPowerW)
	}
	if s.Panel.Efficiency <= 0 || s.Panel.Efficiency > 1 {
		return fmt.Errorf("panel efficiency %.3f outside (0, 1]", s.Panel.Efficiency)
	}
	if s.Panel.TempCoeffPctPerC > 0 {
		return fmt.Errorf("temperature coefficient %.3f %%/°C must not be positive", s.Panel.TempCoeffPctPerC)
	}
	if s.Panel.NOCTC <= 20 {
		return fmt.Errorf("NOCT %.1f °C must exceed the 20 °C reference ambient", s.Panel.NOCTC)
	}

	if s.Array.TiltDeg < 0 || s.Array.TiltDeg > 90 {
		return fmt.Errorf("tilt %.1f outside [0, 90]", s.Array.TiltDeg)
	}
	if s.Array.AzimuthDeg < 0 || s.Array.AzimuthDeg >= 360 {
		return fmt.Errorf("array azimuth %.1f outside [0, 360)", s.Array.AzimuthDeg)
	}
	if s.Array.PanelCount <= 0 {
		return fmt.Errorf("panel count %d must be positive", s.Array.PanelCount)
	}

	for name, loss := range map[string]float64{
		"soiling":      s.Losses.Soiling,
		"shading":      s.Losses.Shading,
		"mismatch":     s.Losses.Mismatch,
		"wiring":       s.Losses.Wiring,
		"connections":  s.Losses.Connections,
		"degradation":  s.Losses.Degradation,
		"nameplate":    s.Losses.Nameplate,
		"availability": s.Losses.Availability,
	} {
		if loss < 0 || loss >= 1 {
			return fmt.Errorf("%s loss %.3f outside [0, 1)", name, loss)
		}
	}

	if s.Inverter.Efficiency <= 0 || s.Inverter.Efficiency > 1 {
		return fmt.Errorf("inverter efficiency %.3f outside (0, 1]", s.Inverter.Efficiency)
	}
	if s.Inverter.ACCapacityW < 0 {
		return fmt.Errorf("inverter AC capacity %.1f W must be >= 0", s.Inverter.ACCapacityW)
	}
	if s.Inverter.ACCapacityW == 0 && s.Inverter.DCACRatio <= 0 {
		return fmt.Errorf("either AC capacity or a positive DC:AC ratio is required")
	}

	return nil
}
