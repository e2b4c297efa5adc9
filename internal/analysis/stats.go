package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// SiteAnnualMean computes the mean observed factor of one site's profile
// restricted to year. Returns false when the profile has no rows in year.
func SiteAnnualMean(profile []model.Observation, year model.ModelYear) (float64, bool) {
	sum := 0.0
	n := 0
	for _, row := range profile {
		if row.Timestamp.Year() != int(year) {
			continue
		}
		sum += row.Value
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// MedianEntry derives a scalar capacity-factor entry for one technology from
// per-site hourly profiles: per-site annual means, then the cross-site
// median. The provenance note records the derivation, e.g.
// "median of average 2016 factors for 2841 points in europe".
func MedianEntry(tech string, year model.ModelYear, region string, sites map[string][]model.Observation) (model.CapacityFactorEntry, error) {
	means := make([]float64, 0, len(sites))
	for _, profile := range sites {
		if m, ok := SiteAnnualMean(profile, year); ok {
			means = append(means, m)
		}
	}
	if len(means) == 0 {
		return model.CapacityFactorEntry{}, fmt.Errorf("%s: no site has observations for year %d", tech, year)
	}
	sort.Float64s(means)
	return model.CapacityFactorEntry{
		Technology: tech,
		Year:       year,
		Value:      percentileSorted(means, 0.5),
		Provenance: fmt.Sprintf("median of average %d factors for %d points in %s", year, len(means), region),
	}, nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
