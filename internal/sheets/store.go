// Package sheets is the single point of contact with the Google spreadsheet
// that stores leads.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SebasPM15/landing-personal/internal/observability/metrics"
	"github.com/SebasPM15/landing-personal/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	// DefaultRange is columns A-D of the LeadsDB tab.
	DefaultRange = "LeadsDB!A:D"

	// ValueInputUserEntered lets the provider parse types and formats from text.
	ValueInputUserEntered = "USER_ENTERED"
)

var tracer = otel.Tracer("landing.internal.sheets")

// Config describes the spreadsheet a Store is bound to. The spreadsheet and
// range are fixed for the lifetime of the Store.
type Config struct {
	SpreadsheetID string
	Range         string
	Credentials   Credentials
	// Endpoint overrides the Sheets API base URL.
	Endpoint string
	Logger   *logging.Logger
	Metrics  *metrics.LeadMetrics
}

// Store appends to and reads from one fixed range of one spreadsheet.
// It holds no mutable state beyond the authenticated client, so it is safe
// for concurrent use.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	rng           string
	logger        *logging.Logger
	metrics       *metrics.LeadMetrics
}

// New authenticates once and returns a Store. Extra client options are
// applied last, which lets callers swap the transport.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Store, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, ErrMissingSpreadsheetID
	}
	if strings.TrimSpace(cfg.Range) == "" {
		cfg.Range = DefaultRange
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	var clientOpts []option.ClientOption
	switch {
	case !cfg.Credentials.empty():
		clientOpts = append(clientOpts, option.WithTokenSource(cfg.Credentials.TokenSource(ctx)))
	case len(opts) == 0:
		return nil, ErrMissingCredentials
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Store{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		rng:           cfg.Range,
		logger:        cfg.Logger.With("component", "sheets", "range", cfg.Range),
		metrics:       cfg.Metrics,
	}, nil
}

// Range returns the fixed A1 range the store reads and appends to.
func (s *Store) Range() string {
	return s.rng
}

// AppendRow appends one row after the last populated row of the range.
func (s *Store) AppendRow(ctx context.Context, values []string) (err error) {
	ctx, span := s.start(ctx, "sheets.values.append")
	defer s.finish(span, "append", time.Now(), &err)

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	body := &sheetsapi.ValueRange{Values: [][]interface{}{cells}}

	resp, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.rng, body).
		ValueInputOption(ValueInputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("append row failed", "error", err)
		return fmt.Errorf("sheets: append row: %w", err)
	}

	if resp.Updates != nil {
		s.logger.Debug("row appended", "updated_range", resp.Updates.UpdatedRange)
	}
	return nil
}

// ReadRange returns every row currently present in the range, in the order
// the provider stores them. Rows are returned as the provider renders them:
// trailing empty cells are not padded back.
func (s *Store) ReadRange(ctx context.Context) (rows [][]string, err error) {
	ctx, span := s.start(ctx, "sheets.values.get")
	defer s.finish(span, "read", time.Now(), &err)

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rng).Context(ctx).Do()
	if err != nil {
		s.logger.Error("read range failed", "error", err)
		return nil, fmt.Errorf("sheets: read range: %w", err)
	}

	rows = make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = cellText(cell)
		}
		rows = append(rows, row)
	}
	span.SetAttributes(attribute.Int("sheets.rows", len(rows)))
	return rows, nil
}

// ListSheetNames returns the titles of every tab in the spreadsheet.
func (s *Store) ListSheetNames(ctx context.Context) (names []string, err error) {
	ctx, span := s.start(ctx, "sheets.spreadsheets.get")
	defer s.finish(span, "list_sheets", time.Now(), &err)

	resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("list sheet names failed", "error", err)
		return nil, fmt.Errorf("sheets: list sheet names: %w", err)
	}

	names = make([]string, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet == nil || sheet.Properties == nil {
			continue
		}
		names = append(names, sheet.Properties.Title)
	}
	s.logger.Info("sheet names", "names", names)
	return names, nil
}

func (s *Store) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("sheets.spreadsheet_id", s.spreadsheetID),
			attribute.String("sheets.range", s.rng),
		),
	)
}

func (s *Store) finish(span trace.Span, op string, started time.Time, errp *error) {
	status := "ok"
	if errp != nil && *errp != nil {
		status = "error"
		span.RecordError(*errp)
		span.SetStatus(codes.Error, (*errp).Error())
	}
	s.metrics.ObserveSheetsCall(op, status, time.Since(started).Seconds())
	span.End()
}

func cellText(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
