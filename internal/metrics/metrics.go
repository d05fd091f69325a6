// Package metrics exposes Prometheus collectors for the submission path
// and the HTTP layer. All Observe methods are safe on a nil receiver so
// callers can run without metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes, used as the "outcome" label.
const (
	OutcomeAccepted      = "accepted"
	OutcomeRejected      = "rejected"
	OutcomeStorageFailed = "storage_failed"
)

// SiteMetrics holds counters/histograms for the lead form and page traffic.
type SiteMetrics struct {
	submissionsTotal *prometheus.CounterVec
	storageFailures  *prometheus.CounterVec
	fallbackFailures prometheus.Counter
	honeypotTotal    prometheus.Counter
	insertLatency    prometheus.Histogram
	requestDuration  *prometheus.HistogramVec
}

// New registers the collectors with reg, or the default registerer when reg is nil.
func New(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadsite",
			Name:      "submissions_total",
			Help:      "Lead form submissions by outcome",
		}, []string{"outcome"}),
		storageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadsite",
			Name:      "storage_failures_total",
			Help:      "Failed application inserts by classified error code",
		}, []string{"code"}),
		fallbackFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadsite",
			Name:      "fallback_log_failures_total",
			Help:      "Fallback log appends that failed after a successful insert",
		}),
		honeypotTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadsite",
			Name:      "honeypot_total",
			Help:      "Submissions that arrived with the honeypot field filled",
		}),
		insertLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadsite",
			Name:      "store_insert_seconds",
			Help:      "Latency of application inserts",
			Buckets:   prometheus.DefBuckets,
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadsite",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.submissionsTotal,
		m.storageFailures,
		m.fallbackFailures,
		m.honeypotTotal,
		m.insertLatency,
		m.requestDuration,
	)
	return m
}

func (m *SiteMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *SiteMetrics) ObserveStorageFailure(code string) {
	if m == nil {
		return
	}
	m.storageFailures.WithLabelValues(code).Inc()
}

func (m *SiteMetrics) ObserveFallbackFailure() {
	if m == nil {
		return
	}
	m.fallbackFailures.Inc()
}

func (m *SiteMetrics) ObserveHoneypot() {
	if m == nil {
		return
	}
	m.honeypotTotal.Inc()
}

func (m *SiteMetrics) ObserveInsertLatency(seconds float64) {
	if m == nil {
		return
	}
	m.insertLatency.Observe(seconds)
}

func (m *SiteMetrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}
