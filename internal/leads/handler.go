package leads

import (
	"encoding/json"
	"net/http"

	"github.com/SebasPM15/landing-personal/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("landing.internal.leads")

// ErrorResponse is the JSON body written for failed requests. Clients read
// Message and show it to the visitor.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Handler handles HTTP requests for leads
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateLead handles POST /leads requests
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "leads.create")
	defer span.End()

	var lead Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		span.RecordError(err)
		writeError(w, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	msg, err := h.service.SubmitLead(ctx, lead)
	if err != nil {
		h.logger.Error("failed to submit lead", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}

// ListLeads handles GET /leads requests
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "leads.list")
	defer span.End()

	rows, err := h.service.ListLeads(ctx)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		h.logger.Error("failed to encode leads", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{StatusCode: status, Message: msg})
}
