package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

func ts(day, hour int) time.Time {
	return time.Date(2015, 1, day, hour, 0, 0, 0, time.UTC)
}

func TestFromSeries_SortsAndDeduplicates(t *testing.T) {
	arch := FromSeries(map[string][]model.Observation{
		"pv": {
			{Timestamp: ts(2, 0), Value: 0.3},
			{Timestamp: ts(1, 0), Value: 0.1},
			{Timestamp: ts(2, 0), Value: 0.4}, // duplicate timestamp, last wins
			{Timestamp: ts(1, 12), Value: 0.2},
		},
	})

	rows := arch.RowsFor("pv", model.TimeRange{Start: ts(1, 0), End: ts(2, 0)})
	require.Len(t, rows, 3)
	assert.Equal(t, ts(1, 0), rows[0].Timestamp)
	assert.Equal(t, ts(1, 12), rows[1].Timestamp)
	assert.Equal(t, ts(2, 0), rows[2].Timestamp)
	assert.Equal(t, 0.4, rows[2].Value)
}

func TestRowsFor_InclusiveDateBounds(t *testing.T) {
	arch := FromSeries(map[string][]model.Observation{
		"pv": {
			{Timestamp: ts(1, 23), Value: 0.1},
			{Timestamp: ts(2, 0), Value: 0.2},
			{Timestamp: ts(2, 23), Value: 0.3},
			{Timestamp: ts(3, 0), Value: 0.4},
		},
	})

	// The end date covers its whole day.
	rows := arch.RowsFor("pv", model.TimeRange{Start: ts(2, 0), End: ts(2, 0)})
	require.Len(t, rows, 2)
	assert.Equal(t, ts(2, 0), rows[0].Timestamp)
	assert.Equal(t, ts(2, 23), rows[1].Timestamp)
}

func TestRowsFor_UnknownTechnology(t *testing.T) {
	arch := FromSeries(map[string][]model.Observation{"pv": {{Timestamp: ts(1, 0), Value: 0.1}}})
	assert.Empty(t, arch.RowsFor("wind", model.TimeRange{Start: ts(1, 0), End: ts(2, 0)}))
}

func TestYearsAndResolution(t *testing.T) {
	arch := FromSeries(map[string][]model.Observation{
		"pv": {
			{Timestamp: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), Value: 0.1},
			{Timestamp: time.Date(2015, 6, 1, 1, 0, 0, 0, time.UTC), Value: 0.2},
			{Timestamp: time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC), Value: 0.3},
		},
	})

	assert.True(t, arch.HasYear(2015))
	assert.True(t, arch.HasYear(2016))
	assert.False(t, arch.HasYear(2014))
	assert.Equal(t, []int{2015, 2016}, arch.Years())
	assert.Equal(t, time.Hour, arch.Resolution())
	assert.Equal(t, []string{"pv"}, arch.Technologies())
}

func TestLoadJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.json")
	content := `{
  "region": "europe",
  "rows": [
    {"technology": "open_field_pv", "timestamp": "2015-01-01T00:00:00Z", "value": 0.0},
    {"technology": "open_field_pv", "timestamp": "2015-01-01 01:00:00", "value": 0.05},
    {"technology": "wind_onshore", "timestamp": "2015-01-01T00:00:00Z", "value": 0.31}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	arch, err := LoadJSON(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"open_field_pv", "wind_onshore"}, arch.Technologies())
	rows := arch.RowsFor("open_field_pv", model.TimeRange{Start: ts(1, 0), End: ts(1, 0)})
	require.Len(t, rows, 2)
	// The space-separated ninja layout parses as UTC.
	assert.Equal(t, ts(1, 1), rows[1].Timestamp)
}

func TestLoadJSON_BadTimestamp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	content := `{"rows": [{"technology": "pv", "timestamp": "yesterday", "value": 0.1}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized timestamp")
}
