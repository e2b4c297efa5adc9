package models

// DatasetRequest represents the request body for building a dataset.
type DatasetRequest struct {
	Config  RunConfig      `json:"config" binding:"required"`
	Archive ArchiveSource  `json:"archive"`
	Options DatasetOptions `json:"options,omitempty"`
}

// RunConfig mirrors the YAML run configuration surface.
type RunConfig struct {
	Year                int                     `json:"year" binding:"required"`
	SubsetTime          []string                `json:"subset_time" binding:"required"` // [start, end], YYYY-MM-DD
	TrimNinjaTimeseries *bool                   `json:"trim_ninja_timeseries,omitempty"`
	Locations           string                  `json:"locations,omitempty"` // continental | national | regional
	CapacityFactors     map[string]FactorConfig `json:"capacity_factors,omitempty"`
}

// FactorConfig is one provenance-annotated capacity-factor entry.
type FactorConfig struct {
	Value float64 `json:"value"`
	Year  int     `json:"year,omitempty"`
	Note  string  `json:"note,omitempty"`
}

// ArchiveSource selects where the time-series archive comes from: a
// server-side export file, or rows inlined in the request.
type ArchiveSource struct {
	File string       `json:"file,omitempty"`
	Rows []ArchiveRow `json:"rows,omitempty"`
}

// ArchiveRow is one inlined observation row.
type ArchiveRow struct {
	Technology string  `json:"technology"`
	Timestamp  string  `json:"timestamp"`
	Value      float64 `json:"value"`
}

// DatasetOptions contains optional dataset parameters.
type DatasetOptions struct {
	IncludeSeries bool `json:"include_series,omitempty"` // default: false
}

// CoverageRequest represents a request to rank technology coverage.
type CoverageRequest struct {
	ArchiveFile string `form:"archive_file" binding:"required"`
	Year        int    `form:"year" binding:"required"`
	Limit       int    `form:"limit,omitempty"` // default: 10
}
