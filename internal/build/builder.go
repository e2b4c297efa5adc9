package build

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/binder"
	"github.com/sentinel-energy/uncertainty-cascade/internal/config"
	"github.com/sentinel-energy/uncertainty-cascade/internal/metrics"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
	"github.com/sentinel-energy/uncertainty-cascade/internal/window"
)

// Dataset is the fully resolved output of one model-build run: the canonical
// timestamp window plus the per-technology bound capacity factors and the
// diagnostics accumulated along the way. This is what gets handed to the
// downstream optimizer.
type Dataset struct {
	RunID     string
	Year      model.ModelYear
	Locations string
	Window    *model.ResolvedWindow
	Factors   map[string]binder.BoundFactor
	Fallbacks []binder.FallbackNote
	Failures  []error
}

type Builder struct{}

func New() *Builder { return &Builder{} }

// Run executes one model-build run: resolve the time window, then bind
// capacity factors to it. Fatal resolution errors abort the run;
// per-technology bind failures are collected on the dataset and the run
// continues.
func (b *Builder) Run(cfg *config.Config, arch *archive.Archive) (*Dataset, error) {
	start := time.Now()
	defer func() { metrics.BuildDuration.Observe(time.Since(start).Seconds()) }()

	rng, err := cfg.Range()
	if err != nil {
		metrics.BuildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	year := model.ModelYear(cfg.Year)

	w, err := window.Resolve(year, rng, arch, cfg.Trim())
	if err != nil {
		var ire *model.InvalidRangeError
		var nde *model.NoDataForYearError
		switch {
		case errors.As(err, &ire):
			metrics.BuildsTotal.WithLabelValues("invalid_range").Inc()
		case errors.As(err, &nde):
			metrics.BuildsTotal.WithLabelValues("no_data").Inc()
		default:
			metrics.BuildsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	res := binder.Bind(w, year, arch.Technologies(), cfg.Entries())

	ds := &Dataset{
		RunID:     uuid.NewString(),
		Year:      year,
		Locations: cfg.Locations,
		Window:    w,
		Factors:   res.Factors,
		Fallbacks: res.Fallbacks,
		Failures:  res.Failures,
	}

	for _, fb := range res.Fallbacks {
		metrics.FallbacksTotal.WithLabelValues(fb.Technology).Inc()
		log.Warn().
			Str("run_id", ds.RunID).
			Str("technology", fb.Technology).
			Int("requested_year", int(fb.RequestedYear)).
			Int("used_year", int(fb.UsedYear)).
			Str("provenance", fb.Provenance).
			Msg("capacity factor bound from fallback year")
	}
	for _, ferr := range res.Failures {
		kind := "missing_entry"
		var pce *model.ProfileCoverageError
		if errors.As(ferr, &pce) {
			kind = "profile_coverage"
		}
		metrics.TechnologyFailuresTotal.WithLabelValues(kind).Inc()
		log.Warn().
			Str("run_id", ds.RunID).
			Err(ferr).
			Msg("technology excluded from dataset")
	}

	outcome := "ok"
	if len(res.Failures) > 0 {
		outcome = "partial"
	}
	metrics.BuildsTotal.WithLabelValues(outcome).Inc()
	log.Info().
		Str("run_id", ds.RunID).
		Int("year", cfg.Year).
		Str("subset_time", rng.String()).
		Bool("trimmed", w.Trimmed).
		Int("dropped_rows", w.DroppedRows).
		Int("timestamps", w.Len()).
		Int("technologies", len(ds.Factors)).
		Msg("dataset build complete")
	return ds, nil
}
