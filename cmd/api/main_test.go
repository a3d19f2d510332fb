package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appconfig "github.com/SebasPM15/landing-personal/internal/config"
	"github.com/SebasPM15/landing-personal/internal/sheets"
	"github.com/SebasPM15/landing-personal/pkg/logging"
)

func TestSetupMetricsExposesLeadMetrics(t *testing.T) {
	handler, m := setupMetrics()
	if handler == nil || m == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	m.ObserveSubmission("ok")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "landing_leads_submissions_total") {
		t.Fatalf("expected submissions counter to be exported")
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Fatalf("expected runtime collectors to be exported")
	}
}

func TestSetupMetricsCanRunTwice(t *testing.T) {
	setupMetrics()
	setupMetrics()
}

func TestNewStoreRequiresSpreadsheetID(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{GoogleClientEmail: "svc@example.iam.gserviceaccount.com", GooglePrivateKey: "key"}

	if _, err := newStore(context.Background(), cfg, nil, logger); err != sheets.ErrMissingSpreadsheetID {
		t.Fatalf("expected ErrMissingSpreadsheetID, got %v", err)
	}
}

func TestNewStoreRequiresCredentials(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{SpreadsheetID: "sheet-1"}

	if _, err := newStore(context.Background(), cfg, nil, logger); err != sheets.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestBuildNotifierDisabledWithoutSendGrid(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{LeadNotifyEmail: "owner@example.com"}

	if n := buildNotifier(cfg, logger); n != nil {
		t.Fatalf("expected nil notifier without SendGrid settings")
	}
}

func TestBuildNotifierEnabled(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{
		SendGridAPIKey:    "SG.test",
		SendGridFromEmail: "noreply@example.com",
		SendGridFromName:  "Portfolio",
		LeadNotifyEmail:   "owner@example.com",
	}

	if n := buildNotifier(cfg, logger); n == nil {
		t.Fatalf("expected notifier when SendGrid is configured")
	}
}
