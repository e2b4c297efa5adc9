package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricPrefix = "dataset_builder_"

var (
	// BuildsTotal counts model-build runs by outcome ("ok", "invalid_range",
	// "no_data", "error").
	BuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "builds_total",
		Help: "Model-build runs by outcome",
	}, []string{"outcome"})

	// FallbacksTotal counts capacity-factor year fallbacks by technology.
	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "capacity_factor_fallbacks_total",
		Help: "Capacity-factor entries bound from a non-matching year",
	}, []string{"technology"})

	// TechnologyFailuresTotal counts recoverable per-technology bind
	// failures ("missing_entry", "profile_coverage").
	TechnologyFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "technology_failures_total",
		Help: "Recoverable per-technology bind failures",
	}, []string{"kind"})

	// BuildDuration observes end-to-end resolve+bind wall time.
	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    metricPrefix + "build_duration_seconds",
		Help:    "End-to-end dataset build duration",
		Buckets: prometheus.DefBuckets,
	})
)
