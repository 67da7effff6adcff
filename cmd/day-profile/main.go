package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chrissnell/solarsim/internal/sim"
	"github.com/chrissnell/solarsim/pkg/config"
	"github.com/chrissnell/solarsim/pkg/solarpos"
	"github.com/chrissnell/solarsim/pkg/timeutil"
)

func main() {
	scenario := config.DefaultSimulation()

	var dateStr string
	flag.Float64Var(&scenario.Site.Latitude, "lat", scenario.Site.Latitude, "Site latitude in degrees")
	flag.Float64Var(&scenario.Site.Longitude, "lon", scenario.Site.Longitude, "Site longitude in degrees")
	flag.Float64Var(&scenario.Site.AltitudeM, "alt", scenario.Site.AltitudeM, "Site altitude in meters")
	flag.StringVar(&scenario.Site.Timezone, "tz", scenario.Site.Timezone, "IANA timezone identifier")
	flag.Float64Var(&scenario.Site.Turbidity, "turbidity", scenario.Site.Turbidity, "Linke turbidity factor")
	flag.Float64Var(&scenario.Array.TiltDeg, "tilt", scenario.Array.TiltDeg, "Array tilt in degrees from horizontal")
	flag.Float64Var(&scenario.Array.AzimuthDeg, "azimuth", scenario.Array.AzimuthDeg, "Array azimuth in degrees (180 = south)")
	flag.IntVar(&scenario.Array.PanelCount, "panels", scenario.Array.PanelCount, "Number of panels in the array")
	flag.StringVar(&dateStr, "date", "", "Date to simulate (YYYY-MM-DD, today when empty)")
	flag.Parse()

	if err := scenario.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid scenario: %v\n", err)
		os.Exit(1)
	}

	zones := timeutil.NewIANAResolver()

	// Anchor the requested date inside the site's local calendar day; a
	// fixed-UTC anchor would shift the day in far-east and far-west zones.
	date := time.Now().UTC()
	if dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			os.Exit(1)
		}
		date = timeutil.DateAnchor(zones, d.Year(), d.Month(), d.Day(), scenario.Site.Timezone)
	}
	year, month, day := timeutil.CivilDate(zones, date, scenario.Site.Timezone)

	simulator := sim.New(zones, nil)
	req := sim.Request{Scenario: scenario, Date: date}
	profile := simulator.DayProfile(req)
	_, events := simulator.SunSummary(req, 12)

	loc, err := time.LoadLocation(scenario.Site.Timezone)
	if err != nil {
		loc = time.UTC
	}

	fmt.Printf("Clear-Sky Day Profile for %.4f, %.4f on %04d-%02d-%02d\n",
		scenario.Site.Latitude, scenario.Site.Longitude, year, month, day)
	fmt.Printf("  Array:      %d × %.0f W, tilt %.0f°, azimuth %.0f°\n",
		scenario.Array.PanelCount, scenario.Panel.RatedPowerW,
		scenario.Array.TiltDeg, scenario.Array.AzimuthDeg)

	switch events.Arc {
	case solarpos.ArcAlwaysAbove:
		fmt.Printf("  Sun:        above the horizon all day (midnight sun)\n")
	case solarpos.ArcAlwaysBelow:
		fmt.Printf("  Sun:        below the horizon all day (polar night)\n")
	default:
		fmt.Printf("  Sunrise:    %s\n", solarpos.FormatLocal(events.Sunrise, loc))
		fmt.Printf("  Solar noon: %s\n", solarpos.FormatLocal(events.SolarNoon, loc))
		fmt.Printf("  Sunset:     %s\n", solarpos.FormatLocal(events.Sunset, loc))
		fmt.Printf("  Day length: %s\n", events.DayLength().Round(time.Minute))
	}
	fmt.Println()

	fmt.Println("  Hour   Elev°    GHI    DNI    POA  Cell°C     AC W")
	for _, s := range profile.Samples {
		fmt.Printf("  %02d:30 %6.1f %6.0f %6.0f %6.0f  %6.1f %8.1f\n",
			s.Hour, s.Sun.ElevationDeg, s.Horizontal.GHI, s.Horizontal.DNI,
			s.POA.Total, s.Power.CellTempC, s.Power.ACPowerW)
	}
	fmt.Println()

	fmt.Printf("  Peak:             %.1f W at %02d:30\n", profile.PeakACPowerW, profile.PeakHour)
	fmt.Printf("  Energy:           %.2f kWh\n", profile.EnergyWh/1000)
	fmt.Printf("  Capacity factor:  %.1f%%\n", profile.CapacityFactor*100)
	fmt.Printf("  Performance ratio: %.1f%%\n", profile.PerformanceRatio*100)
}
