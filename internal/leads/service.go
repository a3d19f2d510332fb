package leads

import (
	"context"

	"github.com/SebasPM15/landing-personal/internal/observability/metrics"
	"github.com/SebasPM15/landing-personal/pkg/logging"
)

// Store is the spreadsheet-backed persistence the service delegates to.
type Store interface {
	AppendRow(ctx context.Context, values []string) error
	ReadRange(ctx context.Context) ([][]string, error)
}

// Notifier is told about every lead that was stored.
type Notifier interface {
	LeadSubmitted(ctx context.Context, lead Lead) error
}

// Service forwards submissions to the store and lists stored rows. It keeps
// no state between calls.
type Service struct {
	store    Store
	notifier Notifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewService wires a service around store. notifier and m may be nil.
func NewService(store Store, notifier Notifier, m *metrics.LeadMetrics, logger *logging.Logger) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}, nil
}

// SubmitLead appends the lead as one row and returns ConfirmationMessage.
// The append is not cancelled when ctx is; store errors are returned as-is.
func (s *Service) SubmitLead(ctx context.Context, lead Lead) (string, error) {
	ctx = context.WithoutCancel(ctx)

	if err := s.store.AppendRow(ctx, lead.Row()); err != nil {
		s.metrics.ObserveSubmission("error")
		return "", err
	}
	s.metrics.ObserveSubmission("ok")
	s.logger.Info("lead stored", "name", lead.Name, "email", lead.Email)

	s.notify(ctx, lead)
	return ConfirmationMessage, nil
}

// ListLeads returns every stored row in store order. An empty store yields an
// empty, non-nil slice.
func (s *Service) ListLeads(ctx context.Context) ([]Row, error) {
	raw, err := s.store.ReadRange(ctx)
	if err != nil {
		s.metrics.ObserveList("error")
		return nil, err
	}
	s.metrics.ObserveList("ok")

	rows := make([]Row, len(raw))
	for i, r := range raw {
		rows[i] = Row(r)
	}
	return rows, nil
}

// notify never fails the submission: the row is already stored.
func (s *Service) notify(ctx context.Context, lead Lead) {
	if s.notifier == nil {
		s.metrics.ObserveNotification("skipped")
		return
	}
	if err := s.notifier.LeadSubmitted(ctx, lead); err != nil {
		s.metrics.ObserveNotification("error")
		s.logger.Warn("lead notification failed", "error", err, "email", lead.Email)
		return
	}
	s.metrics.ObserveNotification("sent")
}
