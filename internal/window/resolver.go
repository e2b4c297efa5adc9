package window

import (
	"sort"
	"time"

	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// Resolve validates the configured analysis year and subset_time range
// against the archive and produces the canonical timestamp index for one
// model-build run.
//
// The index is the sorted union of observation timestamps across all
// technologies for the configured year. With trimming enabled (the default)
// rows outside the range are dropped and the window says so; with trimming
// disabled they pass through unchanged, which callers opt into at their own
// reproducibility risk.
//
// Resolve is a pure function of its inputs plus read-only archive queries:
// identical inputs produce identical windows.
func Resolve(year model.ModelYear, rng model.TimeRange, arch *archive.Archive, trim bool) (*model.ResolvedWindow, error) {
	if rng.Start.After(rng.End) {
		return nil, &model.InvalidRangeError{Year: year, Range: rng, Reason: "start is after end"}
	}
	if !rng.WithinYear(year) {
		// The defect class this subsystem exists to catch: a stale year
		// paired with fresh range bounds (or vice versa).
		return nil, &model.InvalidRangeError{Year: year, Range: rng, Reason: "range is not within the analysis year"}
	}
	if !arch.HasYear(year) {
		return nil, &model.NoDataForYearError{Year: year}
	}

	// Union of all technologies' timestamps over the full year. The raw
	// full-year query is what trimming trims against.
	yearRng := model.YearRange(year)
	seen := map[time.Time]bool{}
	union := make([]time.Time, 0)
	for _, tech := range arch.Technologies() {
		for _, row := range arch.RowsFor(tech, yearRng) {
			if !seen[row.Timestamp] {
				seen[row.Timestamp] = true
				union = append(union, row.Timestamp)
			}
		}
	}
	sort.Slice(union, func(i, j int) bool { return union[i].Before(union[j]) })

	w := &model.ResolvedWindow{
		Year:       year,
		Range:      rng,
		Resolution: arch.Resolution(),
	}
	if trim {
		kept := make([]time.Time, 0, len(union))
		for _, t := range union {
			if rng.Contains(t) {
				kept = append(kept, t)
			}
		}
		w.Timestamps = kept
		w.Trimmed = true
		w.DroppedRows = len(union) - len(kept)
	} else {
		w.Timestamps = union
	}

	if len(w.Timestamps) == 0 {
		return nil, &model.NoDataForYearError{Year: year, Detail: "no rows inside subset_time " + rng.String()}
	}
	return w, nil
}
