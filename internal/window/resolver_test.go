package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

func hourly(tech string, from time.Time, hours int) map[string][]model.Observation {
	rows := make([]model.Observation, 0, hours)
	for i := 0; i < hours; i++ {
		rows = append(rows, model.Observation{
			Timestamp: from.Add(time.Duration(i) * time.Hour),
			Value:     0.2,
		})
	}
	return map[string][]model.Observation{tech: rows}
}

func mustRange(t *testing.T, start, end string) model.TimeRange {
	t.Helper()
	rng, err := model.ParseTimeRange(start, end)
	require.NoError(t, err)
	return rng
}

func TestResolve_ValidRangeInsideYear(t *testing.T) {
	// Ten days of hourly pv data starting 2015-01-01.
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 240))
	rng := mustRange(t, "2015-01-02", "2015-01-05")

	w, err := Resolve(2015, rng, arch, true)
	require.NoError(t, err)
	require.NotZero(t, w.Len())

	for _, ts := range w.Timestamps {
		assert.True(t, rng.Contains(ts), "timestamp %s outside %s", ts, rng)
	}
	assert.Equal(t, 4*24, w.Len(), "four inclusive days of hourly data")
	assert.Equal(t, time.Hour, w.Resolution)
}

func TestResolve_YearRangeMismatchFails(t *testing.T) {
	// Regression guard: a 2015 analysis year paired with 2016 range bounds
	// must abort before any downstream work.
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 48))
	rng := mustRange(t, "2016-01-01", "2016-01-01")

	w, err := Resolve(2015, rng, arch, true)
	require.Error(t, err)
	assert.Nil(t, w)

	var ire *model.InvalidRangeError
	require.ErrorAs(t, err, &ire)
	assert.Equal(t, model.ModelYear(2015), ire.Year)
}

func TestResolve_SingleDayWindow(t *testing.T) {
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 72))
	rng := mustRange(t, "2015-01-01", "2015-01-01")

	w, err := Resolve(2015, rng, arch, true)
	require.NoError(t, err)
	assert.Equal(t, 24, w.Len())
	for _, ts := range w.Timestamps {
		assert.Equal(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), ts.Truncate(24*time.Hour))
	}
}

func TestResolve_StartAfterEndFails(t *testing.T) {
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 48))
	rng := mustRange(t, "2015-02-01", "2015-01-01")

	_, err := Resolve(2015, rng, arch, true)
	var ire *model.InvalidRangeError
	require.ErrorAs(t, err, &ire)
}

func TestResolve_CrossYearRangeFails(t *testing.T) {
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 12, 30, 0, 0, 0, 0, time.UTC), 96))
	rng := mustRange(t, "2015-12-30", "2016-01-02")

	_, err := Resolve(2015, rng, arch, true)
	var ire *model.InvalidRangeError
	require.ErrorAs(t, err, &ire)
}

func TestResolve_NoCoverageForYear(t *testing.T) {
	arch := archive.FromSeries(hourly("pv", time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), 48))
	rng := mustRange(t, "2015-01-01", "2015-01-02")

	_, err := Resolve(2015, rng, arch, true)
	var nde *model.NoDataForYearError
	require.ErrorAs(t, err, &nde)
	assert.Equal(t, model.ModelYear(2015), nde.Year)
}

func TestResolve_EmptyWindowFails(t *testing.T) {
	// Archive covers January only; a July window resolves to nothing.
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 240))
	rng := mustRange(t, "2015-07-01", "2015-07-07")

	_, err := Resolve(2015, rng, arch, true)
	var nde *model.NoDataForYearError
	require.ErrorAs(t, err, &nde)
}

func TestResolve_TrimmingDropsOutOfRangeRows(t *testing.T) {
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 240))
	rng := mustRange(t, "2015-01-03", "2015-01-04")

	w, err := Resolve(2015, rng, arch, true)
	require.NoError(t, err)
	assert.True(t, w.Trimmed)
	assert.Equal(t, 48, w.Len())
	assert.Equal(t, 240-48, w.DroppedRows)
	for _, ts := range w.Timestamps {
		assert.True(t, rng.Contains(ts))
	}
}

func TestResolve_TrimmingDisabledPreservesRows(t *testing.T) {
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 240))
	rng := mustRange(t, "2015-01-03", "2015-01-04")

	w, err := Resolve(2015, rng, arch, false)
	require.NoError(t, err)
	assert.False(t, w.Trimmed)
	assert.Zero(t, w.DroppedRows)
	assert.Equal(t, 240, w.Len(), "out-of-range rows pass through unchanged")
}

func TestResolve_Idempotent(t *testing.T) {
	arch := archive.FromSeries(hourly("pv", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 120))
	rng := mustRange(t, "2015-01-01", "2015-01-03")

	w1, err := Resolve(2015, rng, arch, true)
	require.NoError(t, err)
	w2, err := Resolve(2015, rng, arch, true)
	require.NoError(t, err)
	assert.Equal(t, w1, w2)
}

func TestResolve_UnionAcrossTechnologiesIsStrictlyIncreasing(t *testing.T) {
	base := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	series := map[string][]model.Observation{}
	// Overlapping series with shared timestamps; union must de-duplicate.
	for k, tech := range []string{"pv", "wind"} {
		rows := make([]model.Observation, 0, 48)
		for i := 0; i < 48; i++ {
			rows = append(rows, model.Observation{
				Timestamp: base.Add(time.Duration(i) * time.Hour),
				Value:     float64(k),
			})
		}
		series[tech] = rows
	}
	arch := archive.FromSeries(series)

	w, err := Resolve(2015, mustRange(t, "2015-03-01", "2015-03-02"), arch, true)
	require.NoError(t, err)
	assert.Equal(t, 48, w.Len())
	for i := 1; i < w.Len(); i++ {
		assert.True(t, w.Timestamps[i-1].Before(w.Timestamps[i]), "timestamps must be strictly increasing")
	}
}
