package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSimulationValid(t *testing.T) {
	sim := DefaultSimulation()
	if err := sim.Validate(); err != nil {
		t.Fatalf("default simulation failed validation: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SimulationData)
		wantErr string
	}{
		{"latitude too big", func(s *SimulationData) { s.Site.Latitude = 91 }, "latitude"},
		{"longitude too small", func(s *SimulationData) { s.Site.Longitude = -181 }, "longitude"},
		{"negative altitude", func(s *SimulationData) { s.Site.AltitudeM = -5 }, "altitude"},
		{"albedo above one", func(s *SimulationData) { s.Site.Albedo = 1.2 }, "albedo"},
		{"zero panel count", func(s *SimulationData) { s.Array.PanelCount = 0 }, "panel count"},
		{"negative panel count", func(s *SimulationData) { s.Array.PanelCount = -3 }, "panel count"},
		{"tilt above vertical", func(s *SimulationData) { s.Array.TiltDeg = 95 }, "tilt"},
		{"azimuth wraps", func(s *SimulationData) { s.Array.AzimuthDeg = 360 }, "azimuth"},
		{"loss fraction at one", func(s *SimulationData) { s.Losses.Shading = 1.0 }, "shading"},
		{"negative loss fraction", func(s *SimulationData) { s.Losses.Wiring = -0.1 }, "wiring"},
		{"inverter efficiency zero", func(s *SimulationData) { s.Inverter.Efficiency = 0 }, "inverter efficiency"},
		{"no way to derive AC capacity", func(s *SimulationData) { s.Inverter.ACCapacityW = 0; s.Inverter.DCACRatio = 0 }, "DC:AC"},
		{"positive temp coefficient", func(s *SimulationData) { s.Panel.TempCoeffPctPerC = 0.2 }, "coefficient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := DefaultSimulation()
			tt.mutate(&sim)
			err := sim.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestYAMLProviderDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
simulation:
  site:
    latitude: 35.6762
    longitude: 139.6503
    altitude_m: 40
    timezone: Asia/Tokyo
    turbidity: 3.5
    albedo: 0.25
    ambient_c: 22
    wind_ms: 2
  array:
    tilt_deg: 30
    azimuth_deg: 180
    panel_count: 16
http:
  listen_addr: ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewYAMLProvider(path).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Simulation.Site.Timezone != "Asia/Tokyo" {
		t.Errorf("timezone = %q", cfg.Simulation.Site.Timezone)
	}
	if cfg.Simulation.Array.PanelCount != 16 {
		t.Errorf("panel count = %d, expected 16", cfg.Simulation.Array.PanelCount)
	}
	// Unspecified sections fall back to defaults.
	if cfg.Simulation.Panel.RatedPowerW != 400 {
		t.Errorf("panel rated power = %.0f, expected default 400", cfg.Simulation.Panel.RatedPowerW)
	}
	if cfg.Simulation.Inverter.Efficiency != 0.96 {
		t.Errorf("inverter efficiency = %.3f, expected default 0.96", cfg.Simulation.Inverter.Efficiency)
	}
	if cfg.HTTP.ListenAddr != ":9000" {
		t.Errorf("listen addr = %q", cfg.HTTP.ListenAddr)
	}
}

func TestYAMLProviderRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := `
simulation:
  array:
    tilt_deg: 120
    azimuth_deg: 180
    panel_count: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewYAMLProvider(path).LoadConfig(); err == nil {
		t.Fatal("expected validation failure for tilt 120")
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	if _, err := NewYAMLProvider("/does/not/exist.yaml").LoadConfig(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
