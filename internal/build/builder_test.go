package build

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/config"
	"github.com/sentinel-energy/uncertainty-cascade/internal/metrics"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

func testArchive() *archive.Archive {
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	series := map[string][]model.Observation{}
	for _, tech := range []string{"open_field_pv", "wind_onshore"} {
		rows := make([]model.Observation, 0, 240)
		for i := 0; i < 240; i++ {
			rows = append(rows, model.Observation{Timestamp: start.Add(time.Duration(i) * time.Hour), Value: 0.2})
		}
		series[tech] = rows
	}
	return archive.FromSeries(series)
}

func testConfig() *config.Config {
	return &config.Config{
		Year:       2015,
		SubsetTime: []string{"2015-01-01", "2015-01-05"},
		Locations:  "national",
		CapacityFactors: map[string]config.FactorConfig{
			"open_field_pv": {
				Value: 0.136,
				Year:  2016,
				Note:  "median of average 2016 factors for 2841 points in europe",
			},
			"wind_onshore": {Value: 0.247, Year: 2015},
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	ds, err := New().Run(testConfig(), testArchive())
	require.NoError(t, err)

	assert.NotEmpty(t, ds.RunID)
	assert.Equal(t, model.ModelYear(2015), ds.Year)
	assert.Equal(t, "national", ds.Locations)
	assert.Equal(t, 5*24, ds.Window.Len())
	assert.True(t, ds.Window.Trimmed)
	assert.Empty(t, ds.Failures)

	// The 2016-derived pv median binds as a fallback with its provenance.
	require.Len(t, ds.Fallbacks, 1)
	assert.Equal(t, "open_field_pv", ds.Fallbacks[0].Technology)
	assert.True(t, ds.Factors["open_field_pv"].UsedFallback)
	assert.False(t, ds.Factors["wind_onshore"].UsedFallback)
}

func TestRun_InvalidRangeAborts(t *testing.T) {
	cfg := testConfig()
	cfg.SubsetTime = []string{"2016-01-01", "2016-01-01"}

	ds, err := New().Run(cfg, testArchive())
	require.Error(t, err)
	assert.Nil(t, ds)

	var ire *model.InvalidRangeError
	require.ErrorAs(t, err, &ire)
}

func TestRun_MissingTechnologyIsCollected(t *testing.T) {
	cfg := testConfig()
	delete(cfg.CapacityFactors, "wind_onshore")

	ds, err := New().Run(cfg, testArchive())
	require.NoError(t, err, "a per-technology failure must not abort the run")

	require.Len(t, ds.Failures, 1)
	var mce *model.MissingCapacityFactorError
	require.ErrorAs(t, ds.Failures[0], &mce)
	assert.Equal(t, "wind_onshore", mce.Technology)
	assert.Contains(t, ds.Factors, "open_field_pv")
}

func TestRun_PartialOutcomeCounted(t *testing.T) {
	cfg := testConfig()
	delete(cfg.CapacityFactors, "wind_onshore")

	okBefore := testutil.ToFloat64(metrics.BuildsTotal.WithLabelValues("ok"))
	partialBefore := testutil.ToFloat64(metrics.BuildsTotal.WithLabelValues("partial"))

	ds, err := New().Run(cfg, testArchive())
	require.NoError(t, err)
	require.NotEmpty(t, ds.Failures)

	assert.Equal(t, okBefore, testutil.ToFloat64(metrics.BuildsTotal.WithLabelValues("ok")),
		"a run with failures must not count as ok")
	assert.Equal(t, partialBefore+1, testutil.ToFloat64(metrics.BuildsTotal.WithLabelValues("partial")))
}

func TestWriteCSVs(t *testing.T) {
	ds, err := New().Run(testConfig(), testArchive())
	require.NoError(t, err)

	dir := t.TempDir()
	factorsPath := filepath.Join(dir, "factors.csv")
	seriesPath := filepath.Join(dir, "series.csv")
	require.NoError(t, WriteFactorsCSV(factorsPath, ds))
	require.NoError(t, WriteSeriesCSV(seriesPath, ds))

	factors := readCSV(t, factorsPath)
	require.Len(t, factors, 3) // header + two technologies
	assert.Equal(t, []string{"technology", "source_year", "used_fallback", "kind", "value", "profile_points", "provenance"}, factors[0])
	assert.Equal(t, "open_field_pv", factors[1][0])
	assert.Equal(t, "2016", factors[1][1])
	assert.Equal(t, "true", factors[1][2])

	series := readCSV(t, seriesPath)
	require.Len(t, series, 1+5*24)
	assert.Equal(t, []string{"timestamp", "open_field_pv", "wind_onshore"}, series[0])
	assert.Equal(t, "0.136000", series[1][1])
	assert.Equal(t, "0.247000", series[1][2])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
