// Package metrics exposes the driver's Prometheus gauges: per-stage
// histograms for the five §4.6 pipeline stages plus a counter of
// invocation transforms applied, scraped when the driver runs in a
// long-lived watch/server mode (§4.7.3).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "occ_pipeline_stage_seconds",
		Help:    "Time spent in one pipeline stage for one translation unit.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	TransformsAppliedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "occ_transforms_applied_total",
		Help: "Total number of invocation transforms applied by internal/transform's registry.",
	})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "occ_diagnostics_total",
		Help: "Total number of diagnostics raised, by severity.",
	}, []string{"severity"})

	FilesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "occ_files_processed_total",
		Help: "Total number of translation units emitted.",
	})

	FixpointExceededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "occ_fixpoint_exceeded_total",
		Help: "Total number of function/method bodies that did not reach a fixpoint within the configured iteration cap.",
	})

	WorkerPoolInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "occ_worker_pool_in_flight",
		Help: "Current number of translation-unit workers running concurrently.",
	})
)

// The five §4.6 pipeline stage names, shared by driver call sites and
// tests so the "stage" label never drifts out of sync between them.
const (
	StageParse             = "parse"
	StageCollectIntentions = "collect_intentions"
	StageResolveTypes      = "resolve_types"
	StageTransform         = "transform"
	StageEmit              = "emit"
)

// ObserveStage records how long one pipeline stage took for one
// translation unit.
func ObserveStage(stage string, seconds float64) {
	StageDuration.WithLabelValues(stage).Observe(seconds)
}
