package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Form submissions
	FormSubmissions  *prometheus.CounterVec
	ValidationIssues *prometheus.CounterVec

	// Commerce backend
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec

	// Settings cache
	SettingsCache *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace, subsystem string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FormSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "form_submissions_total",
			Help:      "Total number of form submissions by form and outcome",
		}, []string{"form", "outcome"}),
		ValidationIssues: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "form_validation_errors_total",
			Help:      "Total number of field validation errors by form and field",
		}, []string{"form", "field"}),
		BackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commerce_requests_total",
			Help:      "Total number of commerce backend requests",
		}, []string{"operation", "status"}),
		BackendLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commerce_request_duration_seconds",
			Help:      "Time spent waiting for the commerce backend",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		SettingsCache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "settings_cache_lookups_total",
			Help:      "Settings cache lookups by tier and result",
		}, []string{"tier", "result"}),
	}
}

// Form submission outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// ObserveSubmission records one submission. fieldErrors is the per-field
// error map of the parsed submission.
func (m *Metrics) ObserveSubmission(form, outcome string, fieldErrors map[string][]string) {
	if m == nil {
		return
	}
	m.FormSubmissions.WithLabelValues(form, outcome).Inc()
	for field, errs := range fieldErrors {
		m.ValidationIssues.WithLabelValues(form, field).Add(float64(len(errs)))
	}
}

// ObserveBackend records one commerce backend call.
func (m *Metrics) ObserveBackend(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.BackendRequests.WithLabelValues(operation, status).Inc()
	m.BackendLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveCache records a settings cache lookup.
func (m *Metrics) ObserveCache(tier string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SettingsCache.WithLabelValues(tier, result).Inc()
}
