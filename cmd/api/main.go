package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/SebasPM15/landing-personal/internal/api/router"
	appconfig "github.com/SebasPM15/landing-personal/internal/config"
	"github.com/SebasPM15/landing-personal/internal/leads"
	"github.com/SebasPM15/landing-personal/internal/notify"
	"github.com/SebasPM15/landing-personal/internal/observability/metrics"
	"github.com/SebasPM15/landing-personal/internal/sheets"
	"github.com/SebasPM15/landing-personal/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead intake API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"range", cfg.SheetsRange,
	)

	if err := cfg.ValidateSheets(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	metricsHandler, leadMetrics := setupMetrics()

	ctx := context.Background()
	store, err := newStore(ctx, cfg, leadMetrics, logger)
	if err != nil {
		logger.Error("failed to initialize sheets store", "error", err)
		os.Exit(1)
	}
	if cfg.SheetsDiagnostics || strings.EqualFold(cfg.LogLevel, "debug") {
		logSheetNames(ctx, store, logger)
	}

	service, err := leads.NewService(store, buildNotifier(cfg, logger), leadMetrics, logger)
	if err != nil {
		logger.Error("failed to initialize leads service", "error", err)
		os.Exit(1)
	}

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(service, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics registers lead metrics plus the Go runtime collectors on a
// dedicated registry.
func setupMetrics() (http.Handler, *metrics.LeadMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return metrics.Handler(reg), metrics.NewLeadMetrics(reg)
}

func newStore(ctx context.Context, cfg *appconfig.Config, m *metrics.LeadMetrics, logger *logging.Logger) (*sheets.Store, error) {
	return sheets.New(ctx, sheets.Config{
		SpreadsheetID: cfg.SpreadsheetID,
		Range:         cfg.SheetsRange,
		Credentials: sheets.Credentials{
			ClientEmail: cfg.GoogleClientEmail,
			PrivateKey:  cfg.GooglePrivateKey,
		},
		Endpoint: cfg.SheetsEndpointBase,
		Logger:   logger,
		Metrics:  m,
	})
}

func logSheetNames(ctx context.Context, store *sheets.Store, logger *logging.Logger) {
	names, err := store.ListSheetNames(ctx)
	if err != nil {
		logger.Warn("failed to list sheet names", "error", err)
		return
	}
	logger.Info("spreadsheet tabs", "sheets", names)
}

// buildNotifier returns nil unless SendGrid and an owner address are configured.
func buildNotifier(cfg *appconfig.Config, logger *logging.Logger) leads.Notifier {
	if !cfg.NotificationsEnabled() {
		logger.Info("lead notifications disabled")
		return nil
	}
	sender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
		Host:      cfg.SendGridHost,
	}, logger)
	if sender == nil {
		return nil
	}
	notifier, err := notify.NewLeadNotifier(sender, cfg.LeadNotifyEmail, logger)
	if err != nil {
		logger.Warn("lead notifications disabled", "error", err)
		return nil
	}
	return notifier
}
