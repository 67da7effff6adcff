package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider loads daemon configuration from a YAML file.
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider.
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// yaml-facing mirror of ConfigData. Absent simulation sections inherit the
// defaults, so a minimal config only has to name what it changes.
type yamlConfig struct {
	Simulation *yamlSimulation `yaml:"simulation,omitempty"`
	HTTP       yamlHTTP        `yaml:"http,omitempty"`
	Log        yamlLog         `yaml:"log,omitempty"`
}

type yamlSimulation struct {
	Site     *yamlSite     `yaml:"site,omitempty"`
	Panel    *yamlPanel    `yaml:"panel,omitempty"`
	Array    *yamlArray    `yaml:"array,omitempty"`
	Losses   *LossData     `yaml:"losses,omitempty"`
	Inverter *yamlInverter `yaml:"inverter,omitempty"`
}

type yamlSite struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	AltitudeM float64 `yaml:"altitude_m"`
	Timezone  string  `yaml:"timezone"`
	Turbidity float64 `yaml:"turbidity"`
	Albedo    float64 `yaml:"albedo"`
	AmbientC  float64 `yaml:"ambient_c"`
	WindMS    float64 `yaml:"wind_ms"`
}

type yamlPanel struct {
	WidthM           float64 `yaml:"width_m"`
	HeightM          float64 `yaml:"height_m"`
	RatedPowerW      float64 `yaml:"rated_power_w"`
	Efficiency       float64 `yaml:"efficiency"`
	TempCoeffPctPerC float64 `yaml:"temp_coeff_pct_per_c"`
	NOCTC            float64 `yaml:"noct_c"`
	Bifacial         bool    `yaml:"bifacial"`
	BifacialFactor   float64 `yaml:"bifacial_factor"`
}

type yamlArray struct {
	TiltDeg    float64 `yaml:"tilt_deg"`
	AzimuthDeg float64 `yaml:"azimuth_deg"`
	PanelCount int     `yaml:"panel_count"`
}

type yamlInverter struct {
	Efficiency  float64 `yaml:"efficiency"`
	ACCapacityW float64 `yaml:"ac_capacity_w"`
	DCACRatio   float64 `yaml:"dc_ac_ratio"`
}

type yamlHTTP struct {
	ListenAddr string `yaml:"listen_addr"`
	CORSOrigin string `yaml:"cors_origin"`
}

type yamlLog struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// LoadConfig reads and validates the complete configuration. Missing
// simulation sections fall back to the defaults.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(cfgFile, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", y.filename, err)
	}

	cfg := &ConfigData{
		Simulation: DefaultSimulation(),
		HTTP: HTTPData{
			ListenAddr: raw.HTTP.ListenAddr,
			CORSOrigin: raw.HTTP.CORSOrigin,
		},
		Log: LogData{
			File:       raw.Log.File,
			MaxSizeMB:  raw.Log.MaxSizeMB,
			MaxBackups: raw.Log.MaxBackups,
		},
	}
	if cfg.HTTP.ListenAddr == "" {
		cfg.HTTP.ListenAddr = ":8090"
	}

	if sim := raw.Simulation; sim != nil {
		if sim.Site != nil {
			cfg.Simulation.Site = SiteData(*sim.Site)
		}
		if sim.Panel != nil {
			cfg.Simulation.Panel = PanelData(*sim.Panel)
		}
		if sim.Array != nil {
			cfg.Simulation.Array = ArrayData(*sim.Array)
		}
		if sim.Losses != nil {
			cfg.Simulation.Losses = *sim.Losses
		}
		if sim.Inverter != nil {
			cfg.Simulation.Inverter = InverterData(*sim.Inverter)
		}
	}

	if err := cfg.Simulation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation configuration: %w", err)
	}

	return cfg, nil
}
