package restserver

import (
	"math"
	"time"

	"github.com/chrissnell/solarsim/pkg/config"
	"github.com/chrissnell/solarsim/pkg/irradiance"
	"github.com/chrissnell/solarsim/pkg/pvpower"
	"github.com/chrissnell/solarsim/pkg/solarpos"
	"github.com/chrissnell/solarsim/pkg/transposition"
)

// Response types mirror the calculation structs but stay JSON-safe: the
// pipeline reports infinite air mass for a sun below the horizon, which
// encoding/json cannot represent, so the transform zeroes it.

type simulateResponse struct {
	RunID    string          `json:"run_id"`
	Date     string          `json:"date"`
	Timezone string          `json:"timezone"`
	Profile  profileResponse `json:"profile"`
}

type profileResponse struct {
	Samples          []sampleResponse `json:"samples"`
	PeakACPowerW     float64          `json:"peak_ac_power_w"`
	PeakHour         int              `json:"peak_hour"`
	EnergyWh         float64          `json:"energy_wh"`
	CapacityFactor   float64          `json:"capacity_factor"`
	PerformanceRatio float64          `json:"performance_ratio"`
}

type sampleResponse struct {
	Hour       int                `json:"hour"`
	LocalHour  float64            `json:"local_hour"`
	Instant    time.Time          `json:"instant"`
	Sun        sunPosition        `json:"sun"`
	Horizontal horizontalResponse `json:"horizontal"`
	POA        poaResponse        `json:"poa"`
	Power      powerResponse      `json:"power"`
}

type sunPosition struct {
	ElevationDeg   float64 `json:"elevation_deg"`
	AzimuthDeg     float64 `json:"azimuth_deg"`
	ZenithDeg      float64 `json:"zenith_deg"`
	DeclinationDeg float64 `json:"declination_deg"`
	BelowHorizon   bool    `json:"below_horizon"`
}

type horizontalResponse struct {
	GHI              float64 `json:"ghi"`
	DNI              float64 `json:"dni"`
	DHI              float64 `json:"dhi"`
	Extraterrestrial float64 `json:"extraterrestrial"`
	AirMass          float64 `json:"air_mass"` // 0 when the sun is below the horizon
	ClearnessIndex   float64 `json:"clearness_index"`
}

type poaResponse struct {
	Total     float64 `json:"total"`
	Beam      float64 `json:"beam"`
	Diffuse   float64 `json:"diffuse"`
	Reflected float64 `json:"reflected"`
	AOIDeg    float64 `json:"aoi_deg"`
	Effective float64 `json:"effective"`
}

type powerResponse struct {
	CellTempC          float64 `json:"cell_temp_c"`
	TemperatureFactor  float64 `json:"temperature_factor"`
	SystemLossFactor   float64 `json:"system_loss_factor"`
	DCPowerW           float64 `json:"dc_power_w"`
	InverterEfficiency float64 `json:"inverter_efficiency"`
	ACPowerW           float64 `json:"ac_power_w"`
	ClippingLossPct    float64 `json:"clipping_loss_pct"`
}

type sunResponse struct {
	Date      string      `json:"date"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Timezone  string      `json:"timezone"`
	LocalHour float64     `json:"local_hour"`
	Position  sunPosition `json:"position"`

	SolarNoon    time.Time  `json:"solar_noon"`
	Arc          string     `json:"arc"`
	Sunrise      *time.Time `json:"sunrise,omitempty"`
	Sunset       *time.Time `json:"sunset,omitempty"`
	DayLengthMin float64    `json:"day_length_min"`
	TwilightArc  string     `json:"twilight_arc"`
	CivilDawn    *time.Time `json:"civil_dawn,omitempty"`
	CivilDusk    *time.Time `json:"civil_dusk,omitempty"`
}

func toProfileResponse(p pvpower.DailyProfile) profileResponse {
	out := profileResponse{
		Samples:          make([]sampleResponse, len(p.Samples)),
		PeakACPowerW:     p.PeakACPowerW,
		PeakHour:         p.PeakHour,
		EnergyWh:         p.EnergyWh,
		CapacityFactor:   p.CapacityFactor,
		PerformanceRatio: p.PerformanceRatio,
	}
	for i, s := range p.Samples {
		out.Samples[i] = sampleResponse{
			Hour:       s.Hour,
			LocalHour:  s.LocalHour,
			Instant:    s.Instant,
			Sun:        toSunPosition(s.Sun),
			Horizontal: toHorizontal(s.Horizontal),
			POA:        toPOA(s.POA),
			Power:      toPower(s.Power),
		}
	}
	return out
}

func toSunPosition(p solarpos.Position) sunPosition {
	return sunPosition{
		ElevationDeg:   p.ElevationDeg,
		AzimuthDeg:     p.AzimuthDeg,
		ZenithDeg:      p.ZenithDeg,
		DeclinationDeg: p.DeclinationDeg,
		BelowHorizon:   p.BelowHorizon,
	}
}

func toHorizontal(h irradiance.Horizontal) horizontalResponse {
	airMass := h.AirMass
	if math.IsInf(airMass, 1) {
		airMass = 0
	}
	return horizontalResponse{
		GHI:              h.GHI,
		DNI:              h.DNI,
		DHI:              h.DHI,
		Extraterrestrial: h.Extraterrestrial,
		AirMass:          airMass,
		ClearnessIndex:   h.ClearnessIndex,
	}
}

func toPOA(p transposition.PlaneOfArray) poaResponse {
	return poaResponse{
		Total:     p.Total,
		Beam:      p.Beam,
		Diffuse:   p.Diffuse,
		Reflected: p.Reflected,
		AOIDeg:    p.AOIDeg,
		Effective: p.Effective,
	}
}

func toPower(p pvpower.PowerResult) powerResponse {
	return powerResponse{
		CellTempC:          p.CellTempC,
		TemperatureFactor:  p.TemperatureFactor,
		SystemLossFactor:   p.SystemLossFactor,
		DCPowerW:           p.DCPowerW,
		InverterEfficiency: p.InverterEfficiency,
		ACPowerW:           p.ACPowerW,
		ClippingLossPct:    p.ClippingLossPct,
	}
}

func toSunResponse(dateLabel string, site config.SiteData, hour float64, pos solarpos.Position, ev solarpos.Events) sunResponse {
	resp := sunResponse{
		Date:         dateLabel,
		Latitude:     site.Latitude,
		Longitude:    site.Longitude,
		Timezone:     site.Timezone,
		LocalHour:    hour,
		Position:     toSunPosition(pos),
		SolarNoon:    ev.SolarNoon,
		Arc:          arcLabel(ev.Arc),
		TwilightArc:  arcLabel(ev.TwilightArc),
		DayLengthMin: ev.DayLength().Minutes(),
	}
	if ev.Arc == solarpos.ArcNormal {
		resp.Sunrise = timePtr(ev.Sunrise)
		resp.Sunset = timePtr(ev.Sunset)
	}
	if ev.TwilightArc == solarpos.ArcNormal {
		resp.CivilDawn = timePtr(ev.CivilDawn)
		resp.CivilDusk = timePtr(ev.CivilDusk)
	}
	return resp
}

func arcLabel(a solarpos.DayArc) string {
	switch a {
	case solarpos.ArcAlwaysAbove:
		return "always_above"
	case solarpos.ArcAlwaysBelow:
		return "always_below"
	default:
		return "normal"
	}
}

func timePtr(t time.Time) *time.Time { return &t }
