package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestLeadMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)
	m.ObserveSubmission("ok")
	m.ObserveSubmission("ok")
	m.ObserveSubmission("error")
	m.ObserveList("ok")
	m.ObserveSheetsCall("append", "ok", 0.25)
	m.ObserveNotification("skipped")

	var metric dto.Metric
	if err := m.submissionsTotal.WithLabelValues("ok").Write(&metric); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 ok submissions, got %v", got)
	}
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission("ok")
	m.ObserveList("error")
	m.ObserveSheetsCall("read", "ok", 0.1)
	m.ObserveNotification("sent")
}

func TestHandlerExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)
	m.ObserveSheetsCall("read", "ok", 0.1)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "landing_sheets_call_duration_seconds") {
		t.Fatalf("expected sheets histogram to be exported")
	}
}
