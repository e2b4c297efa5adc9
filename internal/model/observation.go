package model

import (
	"sort"
	"time"
)

// Observation is one row of an observed time series: a timestamp and a
// dimensionless value (capacity factors are fractions in [0,1]).
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// CapacityFactorEntry associates a technology with a capacity-factor
// statistic valid for a particular observational year. The statistic is
// either a scalar (e.g. a cross-site median) or an hourly profile.
//
// Provenance is a human-readable note describing where the number came from,
// e.g. "median of average 2016 factors for 2800 points in Europe". It is
// carried through binding so operators can audit which year's statistic a
// run actually used.
type CapacityFactorEntry struct {
	Technology string
	Year       ModelYear
	Value      float64
	Profile    []Observation
	Provenance string
}

// IsProfile reports whether the entry carries an hourly profile rather than
// a scalar.
func (e CapacityFactorEntry) IsProfile() bool { return len(e.Profile) > 0 }

// SortObservations orders rows by timestamp ascending, in place.
func SortObservations(rows []Observation) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}
