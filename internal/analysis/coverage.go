package analysis

import (
	"sort"
	"time"

	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// Coverage is a technology-level summary of how much of a year the archive
// actually observes. Used for ranking technologies before a run, so a thin
// series is caught before it becomes a resolution failure.
type Coverage struct {
	Technology string

	Year  model.ModelYear
	Rows  int
	First time.Time
	Last  time.Time

	// Completeness is Rows over the number of native-resolution steps in
	// the year; 1.0 means a gap-free series.
	Completeness float64

	MinValue  float64
	MaxValue  float64
	MeanValue float64
}

// ComputeCoverage summarizes one technology's rows for a year.
func ComputeCoverage(arch *archive.Archive, tech string, year model.ModelYear) Coverage {
	c := Coverage{Technology: tech, Year: year}
	rows := arch.RowsFor(tech, model.YearRange(year))
	if len(rows) == 0 {
		return c
	}
	c.Rows = len(rows)
	c.First = rows[0].Timestamp
	c.Last = rows[len(rows)-1].Timestamp

	sum := 0.0
	minv := rows[0].Value
	maxv := rows[0].Value
	for _, r := range rows {
		sum += r.Value
		if r.Value < minv {
			minv = r.Value
		}
		if r.Value > maxv {
			maxv = r.Value
		}
	}
	c.MinValue = minv
	c.MaxValue = maxv
	c.MeanValue = sum / float64(len(rows))

	if res := arch.Resolution(); res > 0 {
		yearStart := time.Date(int(year), 1, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(int(year)+1, 1, 1, 0, 0, 0, 0, time.UTC)
		expected := float64(yearEnd.Sub(yearStart) / res)
		if expected > 0 {
			c.Completeness = float64(c.Rows) / expected
		}
	}
	return c
}

// RankByCompleteness summarizes every technology in the archive and sorts
// descending by completeness, then by row count.
func RankByCompleteness(arch *archive.Archive, year model.ModelYear) []Coverage {
	out := make([]Coverage, 0)
	for _, tech := range arch.Technologies() {
		out = append(out, ComputeCoverage(arch, tech, year))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Completeness != out[j].Completeness {
			return out[i].Completeness > out[j].Completeness
		}
		return out[i].Rows > out[j].Rows
	})
	return out
}
