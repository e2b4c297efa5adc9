package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/build"
	"github.com/sentinel-energy/uncertainty-cascade/internal/config"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// Demo:
// - Synthesize a small hourly archive for 2015
// - Build a dataset for a one-week window to show how the pieces fit together
func main() {
	days := flag.Int("days", 7, "Length of the subset window in days")
	flag.Parse()

	arch := syntheticArchive(2015)

	end := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, *days-1)
	cfg := &config.Config{
		Year:       2015,
		SubsetTime: []string{"2015-01-01", end.Format("2006-01-02")},
		Locations:  "national",
		CapacityFactors: map[string]config.FactorConfig{
			"open_field_pv": {
				Value: 0.136,
				Year:  2016,
				Note:  "median of average 2016 factors for 2841 points in europe",
			},
			"wind_onshore": {
				Value: 0.247,
				Year:  2015,
				Note:  "median of average 2015 factors for 2841 points in europe",
			},
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	ds, err := build.New().Run(cfg, arch)
	if err != nil {
		panic(err)
	}

	fmt.Printf("run %s\n", ds.RunID)
	fmt.Printf("window: %s, %d hourly timestamps, trimmed=%v\n",
		ds.Window.Range, ds.Window.Len(), ds.Window.Trimmed)
	for _, tech := range []string{"open_field_pv", "wind_onshore"} {
		bf := ds.Factors[tech]
		fmt.Printf("%-16s value=%.3f source_year=%d fallback=%v (%s)\n",
			tech, bf.Scalar, bf.SourceYear, bf.UsedFallback, bf.Provenance)
	}
}

// syntheticArchive generates one year of hourly pseudo-observations: a day
// curve for pv, a flat-ish series for wind.
func syntheticArchive(year int) *archive.Archive {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	endExcl := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)

	var pv, wind []model.Observation
	for t := start; t.Before(endExcl); t = t.Add(time.Hour) {
		h := t.Hour()
		pvVal := 0.0
		if h >= 8 && h <= 16 {
			pvVal = 0.5 - 0.05*float64(abs(12-h))
		}
		pv = append(pv, model.Observation{Timestamp: t, Value: pvVal})
		wind = append(wind, model.Observation{Timestamp: t, Value: 0.25 + 0.1*float64(h%5)/5})
	}
	return archive.FromSeries(map[string][]model.Observation{
		"open_field_pv": pv,
		"wind_onshore":  wind,
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
