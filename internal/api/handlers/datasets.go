package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentinel-energy/uncertainty-cascade/internal/api/models"
	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/build"
	"github.com/sentinel-energy/uncertainty-cascade/internal/config"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// DatasetHandler handles dataset-build requests.
type DatasetHandler struct {
	builder *build.Builder
}

func NewDatasetHandler() *DatasetHandler {
	return &DatasetHandler{builder: build.New()}
}

// BuildDataset handles POST /api/v1/datasets
func (h *DatasetHandler) BuildDataset(c *gin.Context) {
	var req models.DatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	arch, err := loadArchive(req.Archive)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_ARCHIVE",
				Message: err.Error(),
			},
		})
		return
	}

	cfg := toConfig(req.Config)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	ds, err := h.builder.Run(cfg, arch)
	if err != nil {
		status, code := http.StatusInternalServerError, "BUILD_ERROR"
		var ire *model.InvalidRangeError
		var nde *model.NoDataForYearError
		switch {
		case errors.As(err, &ire):
			status, code = http.StatusBadRequest, "INVALID_RANGE"
		case errors.As(err, &nde):
			status, code = http.StatusUnprocessableEntity, "NO_DATA_FOR_YEAR"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, toResponse(ds, req.Options.IncludeSeries))
}

func toConfig(rc models.RunConfig) *config.Config {
	cfg := &config.Config{
		Year:                rc.Year,
		SubsetTime:          rc.SubsetTime,
		TrimNinjaTimeseries: rc.TrimNinjaTimeseries,
		Locations:           rc.Locations,
	}
	if len(rc.CapacityFactors) > 0 {
		cfg.CapacityFactors = map[string]config.FactorConfig{}
		for tech, f := range rc.CapacityFactors {
			cfg.CapacityFactors[tech] = config.FactorConfig{
				Value: f.Value,
				Year:  f.Year,
				Note:  f.Note,
			}
		}
	}
	return cfg
}

func toResponse(ds *build.Dataset, includeSeries bool) models.DatasetResponse {
	resp := models.DatasetResponse{
		ID:     ds.RunID,
		Status: "ok",
		Summary: models.DatasetSummary{
			Year:      int(ds.Year),
			Locations: ds.Locations,
			Window: models.TimeWindow{
				Start: ds.Window.Range.Start,
				End:   ds.Window.Range.End,
			},
			Timestamps:  ds.Window.Len(),
			Trimmed:     ds.Window.Trimmed,
			DroppedRows: ds.Window.DroppedRows,
		},
	}
	if len(ds.Failures) > 0 {
		resp.Status = "partial"
	}

	for _, fb := range ds.Fallbacks {
		resp.Summary.Fallbacks = append(resp.Summary.Fallbacks, models.Fallback{
			Technology:    fb.Technology,
			RequestedYear: int(fb.RequestedYear),
			UsedYear:      int(fb.UsedYear),
			Provenance:    fb.Provenance,
		})
	}
	for _, err := range ds.Failures {
		te := models.TechError{Code: "BIND_ERROR", Message: err.Error()}
		var mce *model.MissingCapacityFactorError
		var pce *model.ProfileCoverageError
		switch {
		case errors.As(err, &mce):
			te.Technology = mce.Technology
			te.Code = "MISSING_CAPACITY_FACTOR"
		case errors.As(err, &pce):
			te.Technology = pce.Technology
			te.Code = "PROFILE_COVERAGE"
		}
		resp.Summary.Failures = append(resp.Summary.Failures, te)
	}

	for _, tech := range sortedFactorTechs(ds) {
		bf := ds.Factors[tech]
		out := models.BoundFactor{
			Technology:   bf.Technology,
			SourceYear:   int(bf.SourceYear),
			UsedFallback: bf.UsedFallback,
			Kind:         "scalar",
			Value:        bf.Scalar,
			Provenance:   bf.Provenance,
		}
		if bf.IsProfile {
			out.Kind = "profile"
			out.Value = 0
			out.ProfileRows = len(bf.Profile)
		}
		resp.Factors = append(resp.Factors, out)
	}

	if includeSeries {
		resp.Series = seriesRows(ds)
	}
	return resp
}

func seriesRows(ds *build.Dataset) []models.SeriesRow {
	techs := sortedFactorTechs(ds)
	profiles := map[string]map[int64]float64{}
	for _, tech := range techs {
		bf := ds.Factors[tech]
		if !bf.IsProfile {
			continue
		}
		m := map[int64]float64{}
		for _, row := range bf.Profile {
			m[row.Timestamp.Unix()] = row.Value
		}
		profiles[tech] = m
	}

	out := make([]models.SeriesRow, 0, ds.Window.Len())
	for _, t := range ds.Window.Timestamps {
		values := map[string]float64{}
		for _, tech := range techs {
			bf := ds.Factors[tech]
			if bf.IsProfile {
				values[tech] = profiles[tech][t.Unix()]
			} else {
				values[tech] = bf.Scalar
			}
		}
		out = append(out, models.SeriesRow{Timestamp: t, Values: values})
	}
	return out
}

func loadArchive(src models.ArchiveSource) (*archive.Archive, error) {
	if src.File != "" {
		return archive.LoadJSON(src.File)
	}
	if len(src.Rows) == 0 {
		return nil, errors.New("archive.file or archive.rows is required")
	}
	f := archive.ArchiveFile{Rows: make([]archive.ArchiveRow, 0, len(src.Rows))}
	for _, r := range src.Rows {
		f.Rows = append(f.Rows, archive.ArchiveRow{
			Technology: r.Technology,
			Timestamp:  r.Timestamp,
			Value:      r.Value,
		})
	}
	return archive.FromFile(&f)
}
