package archive

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// ArchiveFile matches the on-disk JSON shape of an exported archive.
//
// Example:
//
//	{
//	  "region": "europe",
//	  "rows": [
//	    {"technology": "open_field_pv", "timestamp": "2015-01-01T00:00:00Z", "value": 0.0}
//	  ]
//	}
type ArchiveFile struct {
	Region string       `json:"region"`
	Rows   []ArchiveRow `json:"rows"`
}

// ArchiveRow is one flattened observation row.
type ArchiveRow struct {
	Technology string  `json:"technology"`
	Timestamp  string  `json:"timestamp"`
	Value      float64 `json:"value"`
}

// LoadJSON reads an archive export from disk.
func LoadJSON(path string) (*Archive, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f ArchiveFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse archive %s: %w", path, err)
	}
	a, err := FromFile(&f)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}
	return a, nil
}

// FromFile builds an archive from an already-decoded export.
func FromFile(f *ArchiveFile) (*Archive, error) {
	series := map[string][]model.Observation{}
	for i, row := range f.Rows {
		ts, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		series[row.Technology] = append(series[row.Technology], model.Observation{
			Timestamp: ts,
			Value:     row.Value,
		})
	}
	return FromSeries(series), nil
}
