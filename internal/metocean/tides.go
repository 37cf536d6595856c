package metocean

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Tide is one high- or low-water event from a tide table.
type Tide struct {
	// Type is "High Tide" or "Low Tide".
	Type string

	// Time is the local clock time as published, e.g. "8:04 AM".
	Time string

	// Date is the published day label, e.g. "Tue 17 February".
	Date string

	// Height is the water height in metres.
	Height float64
}

// tideLine matches lines like:
//
//	Low Tide 2:06 AM (Tue 17 February) 0.75 m
//
// Header and blank lines simply fail the match and are skipped.
var tideLine = regexp.MustCompile(`^(High Tide|Low Tide)\s+([\d:]+\s+[AP]M)\s+\(([^)]+)\)\s+([\d.]+)\s+m`)

// ParseTideTable extracts tide events from the plain-text schedule published
// by the tide-forecast service. Unparseable lines are ignored rather than
// failing the whole table: the source format drifts occasionally and a
// partial table is still useful.
func ParseTideTable(raw string) []Tide {
	var tides []Tide

	for _, line := range strings.Split(raw, "\n") {
		match := tideLine.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		height, err := strconv.ParseFloat(match[4], 64)
		if err != nil {
			continue
		}

		tides = append(tides, Tide{
			Type:   match[1],
			Time:   match[2],
			Date:   match[3],
			Height: height,
		})
	}

	return tides
}

// SimulatedTides produces a plausible semidiurnal schedule for locations
// without a published table: two highs and two lows per day over the given
// number of days, with location-dependent range and timing.
func SimulatedTides(location string, days int) []Tide {
	baseOffset := 0.0
	highBase, lowBase := 4.2, 0.8
	if location != "Conakry" {
		baseOffset = 1.5
		highBase, lowBase = 3.8, 1.0
	}

	today := time.Now().Truncate(24 * time.Hour)
	var tides []Tide

	for day := 0; day < days; day++ {
		d := today.AddDate(0, 0, day)

		events := []struct {
			hour float64
			kind string
		}{
			{1 + baseOffset + rand.Float64()*2, "Low Tide"},
			{7 + baseOffset + rand.Float64()*1.5, "High Tide"},
			{13 + baseOffset + rand.Float64()*2, "Low Tide"},
			{19 + baseOffset + rand.Float64()*1.5, "High Tide"},
		}

		for _, ev := range events {
			hour := int(ev.hour)
			minute := int((ev.hour - float64(hour)) * 60)
			at := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())

			height := lowBase + (rand.Float64()-0.5)*0.5
			if ev.kind == "High Tide" {
				height = highBase + (rand.Float64()-0.5)*1.2
			}

			tides = append(tides, Tide{
				Type:   ev.kind,
				Time:   at.Format("3:04 PM"),
				Date:   at.Format("Mon 02 January"),
				Height: round2(height),
			})
		}
	}

	return tides
}

func round2(v float64) float64 {
	s := fmt.Sprintf("%.2f", v)
	out, _ := strconv.ParseFloat(s, 64)
	return out
}
