package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LeadMetrics exposes counters/histograms for the lead intake path.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	listsTotal       *prometheus.CounterVec
	sheetsLatency    *prometheus.HistogramVec
	notifyTotal      *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landing",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total lead submissions by outcome",
		}, []string{"status"}),
		listsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landing",
			Subsystem: "leads",
			Name:      "list_requests_total",
			Help:      "Total lead list requests by outcome",
		}, []string{"status"}),
		sheetsLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "landing",
			Subsystem: "sheets",
			Name:      "call_duration_seconds",
			Help:      "Latency of Google Sheets API calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landing",
			Subsystem: "leads",
			Name:      "notifications_total",
			Help:      "Owner notification emails by outcome",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.listsTotal, m.sheetsLatency, m.notifyTotal)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *LeadMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
}

func (m *LeadMetrics) ObserveList(status string) {
	if m == nil {
		return
	}
	m.listsTotal.WithLabelValues(status).Inc()
}

func (m *LeadMetrics) ObserveSheetsCall(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.sheetsLatency.WithLabelValues(operation, status).Observe(seconds)
}

func (m *LeadMetrics) ObserveNotification(status string) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(status).Inc()
}
