package models

import "time"

// DatasetResponse represents the response from a dataset build.
type DatasetResponse struct {
	ID      string         `json:"id"`
	Status  string         `json:"status"` // "ok" or "partial" when technologies failed
	Summary DatasetSummary `json:"summary"`
	Factors []BoundFactor  `json:"factors"`
	Series  []SeriesRow    `json:"series,omitempty"`
}

// DatasetSummary contains aggregated build results and diagnostics.
type DatasetSummary struct {
	Year        int         `json:"year"`
	Locations   string      `json:"locations,omitempty"`
	Window      TimeWindow  `json:"window"`
	Timestamps  int         `json:"timestamps"`
	Trimmed     bool        `json:"trimmed"`
	DroppedRows int         `json:"dropped_rows"`
	Fallbacks   []Fallback  `json:"fallbacks,omitempty"`
	Failures    []TechError `json:"failures,omitempty"`
}

// TimeWindow represents the resolved time range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Fallback is a warning-level diagnostic for a year substitution.
type Fallback struct {
	Technology    string `json:"technology"`
	RequestedYear int    `json:"requested_year"`
	UsedYear      int    `json:"used_year"`
	Provenance    string `json:"provenance,omitempty"`
}

// TechError is a recoverable per-technology failure.
type TechError struct {
	Technology string `json:"technology,omitempty"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// BoundFactor is one technology's bound capacity factor.
type BoundFactor struct {
	Technology   string  `json:"technology"`
	SourceYear   int     `json:"source_year"`
	UsedFallback bool    `json:"used_fallback"`
	Kind         string  `json:"kind"` // "scalar" or "profile"
	Value        float64 `json:"value,omitempty"`
	ProfileRows  int     `json:"profile_rows,omitempty"`
	Provenance   string  `json:"provenance,omitempty"`
}

// SeriesRow is one window timestamp with per-technology values.
type SeriesRow struct {
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// CoverageResponse is the coverage ranking payload.
type CoverageResponse struct {
	Year     int           `json:"year"`
	Coverage []CoverageRow `json:"coverage"`
}

// CoverageRow summarizes one technology's archive coverage.
type CoverageRow struct {
	Technology   string    `json:"technology"`
	Rows         int       `json:"rows"`
	First        time.Time `json:"first,omitempty"`
	Last         time.Time `json:"last,omitempty"`
	Completeness float64   `json:"completeness"`
	MeanValue    float64   `json:"mean_value"`
}

// ErrorResponse is the API error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code plus a human message.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
