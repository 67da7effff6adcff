// Package sim composes the five pure calculation layers into per-hour and
// whole-day photovoltaic simulations: civil time resolution, solar geometry,
// clear-sky irradiance, plane-of-array transposition, and the loss-and-power
// pipeline. The simulator itself holds no mutable state; every call is a
// pure function of the request.
package sim

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/solarsim/pkg/config"
	"github.com/chrissnell/solarsim/pkg/irradiance"
	"github.com/chrissnell/solarsim/pkg/pvpower"
	"github.com/chrissnell/solarsim/pkg/solarpos"
	"github.com/chrissnell/solarsim/pkg/timeutil"
	"github.com/chrissnell/solarsim/pkg/transposition"
)

// hoursPerDay is the number of evenly spaced samples in a daily profile.
const hoursPerDay = 24

// Request is one simulation scenario: a site, a calendar day, and the array
// hardware. Date may be any instant within the intended day; the civil-time
// resolver derives the local calendar date from it.
type Request struct {
	Scenario config.SimulationData
	Date     time.Time
}

// Simulator evaluates simulation requests. Safe for concurrent use.
type Simulator struct {
	zones    timeutil.ZoneResolver
	logger   *zap.SugaredLogger
	parallel bool
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithParallelProfile computes the 24 day-profile samples across worker
// goroutines. The samples are independent, so this changes throughput only,
// never results.
func WithParallelProfile() Option {
	return func(s *Simulator) { s.parallel = true }
}

// New creates a Simulator using the given timezone capability.
func New(zones timeutil.ZoneResolver, logger *zap.SugaredLogger, opts ...Option) *Simulator {
	s := &Simulator{zones: zones, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample runs the full pipeline for one local wall-clock hour of the
// request's day.
func (s *Simulator) Sample(req Request, localHour float64) pvpower.HourlySample {
	sc := req.Scenario
	site := sc.Site

	instant := timeutil.Resolve(s.zones, req.Date, localHour, site.Timezone)
	sun := solarpos.Compute(instant, site.Latitude, site.Longitude)
	horiz := irradiance.ClearSky(instant, sun.ZenithDeg, site.AltitudeM, site.Turbidity)
	poa := transposition.Transpose(horiz, sun, sc.Array.TiltDeg, sc.Array.AzimuthDeg, site.Albedo)

	panel := panelSpec(sc.Panel)
	effective := pvpower.EffectiveInput(poa, panel)
	power := pvpower.Compute(effective, poa.Total, panel, sc.Array.PanelCount, site.AmbientC, site.WindMS,
		lossConfig(sc.Losses), inverterSpec(sc.Inverter))

	return pvpower.HourlySample{
		LocalHour:  localHour,
		Instant:    instant,
		Sun:        sun,
		Horizontal: horiz,
		POA:        poa,
		Power:      power,
	}
}

// DayProfile computes the 24-sample daily profile, sampling each hour at the
// local half-hour, and its summary statistics.
func (s *Simulator) DayProfile(req Request) pvpower.DailyProfile {
	samples := make([]pvpower.HourlySample, hoursPerDay)

	compute := func(h int) {
		samples[h] = s.Sample(req, float64(h)+0.5)
		samples[h].Hour = h
	}

	if s.parallel {
		var wg sync.WaitGroup
		wg.Add(hoursPerDay)
		for h := 0; h < hoursPerDay; h++ {
			go func(h int) {
				defer wg.Done()
				compute(h)
			}(h)
		}
		wg.Wait()
	} else {
		for h := 0; h < hoursPerDay; h++ {
			compute(h)
		}
	}

	profile := pvpower.Summarize(samples, panelSpec(req.Scenario.Panel), req.Scenario.Array.PanelCount)

	if s.logger != nil {
		s.logger.Debugw("day profile computed",
			"date", req.Date.Format("2006-01-02"),
			"timezone", req.Scenario.Site.Timezone,
			"peak_w", profile.PeakACPowerW,
			"energy_wh", profile.EnergyWh,
		)
	}
	return profile
}

// SunSummary returns the sun position at an instant together with the events
// of the site's local calendar day.
func (s *Simulator) SunSummary(req Request, localHour float64) (solarpos.Position, solarpos.Events) {
	site := req.Scenario.Site
	instant := timeutil.Resolve(s.zones, req.Date, localHour, site.Timezone)
	pos := solarpos.Compute(instant, site.Latitude, site.Longitude)

	// DayEvents keys off the UTC calendar date, which for zones far from
	// the prime meridian can be the adjacent local day. Anchor on the UTC
	// day whose solar noon falls nearest the site's local noon.
	year, month, day := timeutil.CivilDate(s.zones, instant, site.Timezone)
	localNoon := timeutil.DateAnchor(s.zones, year, month, day, site.Timezone)
	events := solarpos.DayEvents(localNoon, site.Latitude, site.Longitude)
	if d := events.SolarNoon.Sub(localNoon); d > 12*time.Hour {
		events = solarpos.DayEvents(localNoon.AddDate(0, 0, -1), site.Latitude, site.Longitude)
	} else if d < -12*time.Hour {
		events = solarpos.DayEvents(localNoon.AddDate(0, 0, 1), site.Latitude, site.Longitude)
	}
	return pos, events
}

// AnchorDate returns an instant inside the zone's local calendar day,
// suitable as a Request date.
func (s *Simulator) AnchorDate(year int, month time.Month, day int, timezoneID string) time.Time {
	return timeutil.DateAnchor(s.zones, year, month, day, timezoneID)
}

// CivilDate returns the calendar date the zone assigns to the instant.
func (s *Simulator) CivilDate(instant time.Time, timezoneID string) (int, time.Month, int) {
	return timeutil.CivilDate(s.zones, instant, timezoneID)
}

func panelSpec(p config.PanelData) pvpower.PanelSpec {
	return pvpower.PanelSpec{
		WidthM:           p.WidthM,
		HeightM:          p.HeightM,
		RatedPowerW:      p.RatedPowerW,
		Efficiency:       p.Efficiency,
		TempCoeffPctPerC: p.TempCoeffPctPerC,
		NOCTC:            p.NOCTC,
		Bifacial:         p.Bifacial,
		BifacialFactor:   p.BifacialFactor,
	}
}

func lossConfig(l config.LossData) pvpower.LossConfig {
	return pvpower.LossConfig{
		Soiling:      l.Soiling,
		Shading:      l.Shading,
		Mismatch:     l.Mismatch,
		Wiring:       l.Wiring,
		Connections:  l.Connections,
		Degradation:  l.Degradation,
		Nameplate:    l.Nameplate,
		Availability: l.Availability,
	}
}

func inverterSpec(i config.InverterData) pvpower.InverterSpec {
	return pvpower.InverterSpec{
		Efficiency:  i.Efficiency,
		ACCapacityW: i.ACCapacityW,
		DCACRatio:   i.DCACRatio,
	}
}
