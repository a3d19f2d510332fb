// Package leadclient calls the lead intake service on behalf of the contact
// form and the CLI.
package leadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SebasPM15/landing-personal/internal/leads"
	"github.com/SebasPM15/landing-personal/pkg/logging"
)

const (
	// DefaultBaseURL is where the intake service listens in development.
	DefaultBaseURL = "http://localhost:3500"

	// Timeout bounds every call to the intake service.
	Timeout = 10 * time.Second

	// Fallback messages shown when the service does not supply one.
	SubmitFallbackMessage = "Error al enviar el formulario"
	ListFallbackMessage   = "Error al obtener los leads"
)

// Error is the visitor-facing failure of a call. Message is either the
// service's own message or a generic fallback.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config controls how the client behaves.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// Client posts and lists leads over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// New creates a Client. Unless an HTTP client is supplied, calls time out
// after Timeout.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, logger: logger}
}

// CreateLead submits lead and returns the service's confirmation text.
func (c *Client) CreateLead(ctx context.Context, lead leads.Lead) (string, error) {
	body, err := json.Marshal(lead)
	if err != nil {
		return "", &Error{Message: SubmitFallbackMessage, Err: fmt.Errorf("leadclient: marshal lead: %w", err)}
	}
	data, err := c.invoke(ctx, http.MethodPost, "/leads", body, SubmitFallbackMessage)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListLeads fetches every stored row.
func (c *Client) ListLeads(ctx context.Context) ([]leads.Row, error) {
	data, err := c.invoke(ctx, http.MethodGet, "/leads", nil, ListFallbackMessage)
	if err != nil {
		return nil, err
	}
	rows := []leads.Row{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, &Error{Message: ListFallbackMessage, Err: fmt.Errorf("leadclient: decode rows: %w", err)}
	}
	return rows, nil
}

func (c *Client) invoke(ctx context.Context, method, path string, body []byte, fallback string) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &Error{Message: fallback, Err: fmt.Errorf("leadclient: build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("lead service unreachable", "error", err, "method", method, "path", path)
		return nil, &Error{Message: fallback, Err: fmt.Errorf("leadclient: http error: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: fallback, Err: fmt.Errorf("leadclient: read response: %w", err)}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	apiErr := decodeError(resp.StatusCode, data, fallback)
	c.logger.Warn("lead service returned error", "status", resp.StatusCode, "message", apiErr.Message, "path", path)
	return nil, apiErr
}

func decodeError(status int, data []byte, fallback string) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	msg := fallback
	if err := json.Unmarshal(data, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		msg = payload.Message
	}
	return &Error{
		StatusCode: status,
		Message:    msg,
		Err:        fmt.Errorf("leadclient: status %d", status),
	}
}
