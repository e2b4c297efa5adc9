package archive

import (
	"sort"
	"time"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// Archive is a read-only collection of per-technology observed time series.
// It is built once by a loader and then only queried, so it may be shared
// across concurrent model-build runs.
type Archive struct {
	series map[string][]model.Observation
	years  map[int]bool
}

// FromSeries builds an archive from per-technology observation slices.
// Rows are sorted by timestamp and de-duplicated (last value wins for a
// repeated timestamp), so loaders don't have to care about input order.
func FromSeries(series map[string][]model.Observation) *Archive {
	a := &Archive{
		series: make(map[string][]model.Observation, len(series)),
		years:  map[int]bool{},
	}
	for tech, rows := range series {
		sorted := make([]model.Observation, len(rows))
		copy(sorted, rows)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})
		dedup := sorted[:0]
		for _, r := range sorted {
			if n := len(dedup); n > 0 && dedup[n-1].Timestamp.Equal(r.Timestamp) {
				dedup[n-1] = r
				continue
			}
			dedup = append(dedup, r)
		}
		a.series[tech] = dedup
		for _, r := range dedup {
			a.years[r.Timestamp.Year()] = true
		}
	}
	return a
}

// Technologies returns the technology ids present, sorted.
func (a *Archive) Technologies() []string {
	out := make([]string, 0, len(a.series))
	for tech := range a.series {
		out = append(out, tech)
	}
	sort.Strings(out)
	return out
}

// HasYear reports whether any technology has at least one row in year.
func (a *Archive) HasYear(year model.ModelYear) bool {
	return a.years[int(year)]
}

// Years returns the observation years present, sorted ascending.
func (a *Archive) Years() []int {
	out := make([]int, 0, len(a.years))
	for y := range a.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// RowsFor returns the ordered rows for a technology inside rng (inclusive
// date bounds). The returned slice aliases the archive's backing storage and
// must not be mutated.
func (a *Archive) RowsFor(tech string, rng model.TimeRange) []model.Observation {
	rows := a.series[tech]
	lo := sort.Search(len(rows), func(i int) bool {
		return !rows[i].Timestamp.Before(rng.Start)
	})
	hi := sort.Search(len(rows), func(i int) bool {
		return !rows[i].Timestamp.Before(rng.End.AddDate(0, 0, 1))
	})
	return rows[lo:hi]
}

// Resolution infers the archive's native cadence as the smallest positive
// gap between consecutive rows of any technology. Returns 0 for an archive
// with fewer than two rows per series.
func (a *Archive) Resolution() time.Duration {
	var best time.Duration
	for _, rows := range a.series {
		for i := 1; i < len(rows); i++ {
			gap := rows[i].Timestamp.Sub(rows[i-1].Timestamp)
			if gap > 0 && (best == 0 || gap < best) {
				best = gap
			}
		}
	}
	return best
}
