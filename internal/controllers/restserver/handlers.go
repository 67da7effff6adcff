package restserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/chrissnell/solarsim/internal/sim"
	"github.com/chrissnell/solarsim/pkg/config"
)

const dateLayout = "2006-01-02"

// simulateRequest is the POST /api/simulate body. Every section under
// "simulation" is optional; absent sections inherit the server's default
// scenario section-by-section.
type simulateRequest struct {
	Date       string         `json:"date"` // YYYY-MM-DD, today when empty
	Simulation *scenarioPatch `json:"simulation,omitempty"`
}

// scenarioPatch mirrors config.SimulationData with pointer sections so the
// handler can tell "omitted" from "zero-valued", the same way the YAML
// provider merges partial files over the defaults.
type scenarioPatch struct {
	Site     *config.SiteData     `json:"site,omitempty"`
	Panel    *config.PanelData    `json:"panel,omitempty"`
	Array    *config.ArrayData    `json:"array,omitempty"`
	Losses   *config.LossData     `json:"losses,omitempty"`
	Inverter *config.InverterData `json:"inverter,omitempty"`
}

// apply overlays the present sections onto a base scenario.
func (p *scenarioPatch) apply(base config.SimulationData) config.SimulationData {
	if p == nil {
		return base
	}
	if p.Site != nil {
		base.Site = *p.Site
	}
	if p.Panel != nil {
		base.Panel = *p.Panel
	}
	if p.Array != nil {
		base.Array = *p.Array
	}
	if p.Losses != nil {
		base.Losses = *p.Losses
	}
	if p.Inverter != nil {
		base.Inverter = *p.Inverter
	}
	return base
}

func (c *Controller) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *Controller) handleSimulate(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New().String()

	var body simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.logger.Warnw("simulate request rejected", "run_id", runID, "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	scenario := body.Simulation.apply(c.defaultScenario)
	if err := scenario.Validate(); err != nil {
		c.logger.Warnw("simulate request rejected", "run_id", runID, "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	date, dateLabel, err := c.anchorDate(body.Date, scenario.Site.Timezone)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	profile := c.simulator.DayProfile(sim.Request{Scenario: scenario, Date: date})
	c.logger.Infow("simulation run",
		"run_id", runID,
		"date", dateLabel,
		"timezone", scenario.Site.Timezone,
		"energy_wh", profile.EnergyWh,
		"elapsed", time.Since(start),
	)

	writeJSON(w, http.StatusOK, simulateResponse{
		RunID:    runID,
		Date:     dateLabel,
		Timezone: scenario.Site.Timezone,
		Profile:  toProfileResponse(profile),
	})
}

// handleSun reports the sun position and day events for a site. Query
// parameters lat, lon, and tz override the default scenario; date and hour
// select the evaluation time.
func (c *Controller) handleSun(w http.ResponseWriter, r *http.Request) {
	scenario := c.defaultScenario
	q := r.URL.Query()

	if v := q.Get("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid lat")
			return
		}
		scenario.Site.Latitude = lat
	}
	if v := q.Get("lon"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid lon")
			return
		}
		scenario.Site.Longitude = lon
	}
	if v := q.Get("tz"); v != "" {
		scenario.Site.Timezone = v
	}
	if err := scenario.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	date, dateLabel, err := c.anchorDate(q.Get("date"), scenario.Site.Timezone)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hour := 12.0
	if v := q.Get("hour"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil || h < 0 || h >= 24 {
			writeError(w, http.StatusBadRequest, "hour must be in [0, 24)")
			return
		}
		hour = h
	}

	pos, events := c.simulator.SunSummary(sim.Request{Scenario: scenario, Date: date}, hour)
	writeJSON(w, http.StatusOK, toSunResponse(dateLabel, scenario.Site, hour, pos, events))
}

// anchorDate turns an optional YYYY-MM-DD string into an instant inside that
// local calendar day for the zone, plus the local-day label echoed in the
// response. A naive fixed-UTC anchor would simulate the adjacent local day in
// zones far from the prime meridian.
func (c *Controller) anchorDate(dateStr, timezoneID string) (time.Time, string, error) {
	if dateStr == "" {
		now := time.Now().UTC()
		year, month, day := c.simulator.CivilDate(now, timezoneID)
		return now, fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
	}
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, "", err
	}
	anchor := c.simulator.AnchorDate(d.Year(), d.Month(), d.Day(), timezoneID)
	return anchor, dateStr, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
