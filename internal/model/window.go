package model

import (
	"fmt"
	"time"
)

// ModelYear is the calendar year whose observations a model-build run is
// assumed to represent. It is fixed at configuration load and never changes
// for the lifetime of a run.
type ModelYear int

// TimeRange is an inclusive pair of calendar dates. All timestamps in this
// subsystem are timezone-naive; we normalize them to UTC on parse.
//
// End is a date, so a range like 2015-01-01..2015-01-01 covers every
// observation on that day.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

const dateLayout = "2006-01-02"

// ParseTimeRange parses a pair of ISO-8601 dates into a TimeRange.
// It does not check ordering or year membership; that is the resolver's job,
// so that a misconfigured range fails with a typed error instead of a parse
// error.
func ParseTimeRange(start, end string) (TimeRange, error) {
	s, err := time.ParseInLocation(dateLayout, start, time.UTC)
	if err != nil {
		return TimeRange{}, fmt.Errorf("subset_time start %q: %w", start, err)
	}
	e, err := time.ParseInLocation(dateLayout, end, time.UTC)
	if err != nil {
		return TimeRange{}, fmt.Errorf("subset_time end %q: %w", end, err)
	}
	return TimeRange{Start: s, End: e}, nil
}

// Contains reports whether t falls inside the range, treating End as the
// whole final day.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End.AddDate(0, 0, 1))
}

// WithinYear reports whether both endpoints fall in year.
func (r TimeRange) WithinYear(year ModelYear) bool {
	return r.Start.Year() == int(year) && r.End.Year() == int(year)
}

func (r TimeRange) String() string {
	return r.Start.Format(dateLayout) + ".." + r.End.Format(dateLayout)
}

// YearRange returns the full-calendar-year range for year.
func YearRange(year ModelYear) TimeRange {
	return TimeRange{
		Start: time.Date(int(year), 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(int(year), 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// ResolvedWindow is the canonical timestamp index for one model-build run:
// ordered, de-duplicated timestamps at the archive's native resolution.
//
// Trimmed records whether out-of-range archive rows were dropped during
// resolution. Downstream callers must be told which occurred, since it
// affects reproducibility of results.
type ResolvedWindow struct {
	Year        ModelYear
	Range       TimeRange
	Timestamps  []time.Time
	Resolution  time.Duration
	Trimmed     bool
	DroppedRows int
}

// Len returns the number of timestamps in the window.
func (w *ResolvedWindow) Len() int { return len(w.Timestamps) }
