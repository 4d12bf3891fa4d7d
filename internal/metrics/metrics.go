// Package metrics exposes Prometheus instrumentation for batch jobs and
// the rule/pattern detectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry groups the core's Prometheus collectors. Callers register it
// against their own prometheus.Registerer (or the default one) once at
// startup.
type Registry struct {
	PatternsDetected  *prometheus.CounterVec
	RuleEvaluations   *prometheus.CounterVec
	RuleErrors        *prometheus.CounterVec
	ScreeningHits     *prometheus.CounterVec
	BatchJobDuration  *prometheus.HistogramVec
	BatchJobsRunning  prometheus.Gauge
	AlertsCreated     *prometheus.CounterVec
	SARsFiled         prometheus.Counter
}

// NewRegistry constructs a Registry with unregistered collectors.
func NewRegistry() *Registry {
	return &Registry{
		PatternsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aml_core",
			Name:      "patterns_detected_total",
			Help:      "Number of detected patterns by pattern type.",
		}, []string{"pattern_type"}),
		RuleEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aml_core",
			Name:      "rule_evaluations_total",
			Help:      "Number of per-transaction rule evaluations by rule code.",
		}, []string{"rule_code"}),
		RuleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aml_core",
			Name:      "rule_errors_total",
			Help:      "Number of rule evaluator errors, contained per-rule.",
		}, []string{"rule_code"}),
		ScreeningHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aml_core",
			Name:      "screening_hits_total",
			Help:      "Number of screening hits by watchlist and match type.",
		}, []string{"watchlist", "match_type"}),
		BatchJobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aml_core",
			Name:      "batch_job_duration_seconds",
			Help:      "Duration of completed batch jobs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job_kind", "status"}),
		BatchJobsRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aml_core",
			Name:      "batch_jobs_running",
			Help:      "Number of batch jobs currently executing.",
		}),
		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aml_core",
			Name:      "alerts_created_total",
			Help:      "Number of alerts created by severity.",
		}, []string{"severity"}),
		SARsFiled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aml_core",
			Name:      "sars_filed_total",
			Help:      "Number of SARs successfully filed.",
		}),
	}
}

// MustRegister registers every collector against reg.
func (r *Registry) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		r.PatternsDetected,
		r.RuleEvaluations,
		r.RuleErrors,
		r.ScreeningHits,
		r.BatchJobDuration,
		r.BatchJobsRunning,
		r.AlertsCreated,
		r.SARsFiled,
	)
}
