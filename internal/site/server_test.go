package site

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebasPM15/landing-personal/internal/leads"
	"github.com/SebasPM15/landing-personal/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []leads.Lead
	err   error
}

func (f *fakeSubmitter) CreateLead(_ context.Context, lead leads.Lead) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, lead)
	if f.err != nil {
		return "", f.err
	}
	return leads.ConfirmationMessage, nil
}

func newTestServer(t *testing.T, sub *fakeSubmitter) *Server {
	t.Helper()
	s, err := New(Config{Submitter: sub, Logger: logging.NewWithWriter("error", io.Discard)})
	require.NoError(t, err)
	return s
}

func postContact(s *Server, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresSubmitter(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNilSubmitter)
}

func TestIndex_RendersSections(t *testing.T) {
	s := newTestServer(t, &fakeSubmitter{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{`id="home"`, `id="about"`, `id="skills"`, `id="projects"`, `id="contact"`, "Mateo Pilco", "Bases de Datos", "Aplicación Bancaria"} {
		assert.Contains(t, body, want)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &fakeSubmitter{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t, &fakeSubmitter{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContact_InvalidEmailSkipsSubmitter(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newTestServer(t, sub)

	rec := postContact(s, url.Values{"name": {"Ana"}, "email": {"not-an-email"}}, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ingresa un correo electrónico válido")
	assert.Contains(t, rec.Body.String(), `value="not-an-email"`)
	assert.Empty(t, sub.calls)
}

func TestContact_MissingNameSkipsSubmitter(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newTestServer(t, sub)

	rec := postContact(s, url.Values{"email": {"ana@example.com"}}, true)

	assert.Contains(t, rec.Body.String(), "Por favor ingresa tu nombre")
	assert.Empty(t, sub.calls)
}

func TestContact_SuccessShowsBanner(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newTestServer(t, sub)

	rec := postContact(s, url.Values{"name": {" Ana Diaz "}, "email": {"ana@example.com"}}, true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, leads.ConfirmationMessage)
	assert.Contains(t, body, `data-dismiss-ms="5000"`)
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.NotContains(t, body, "Ana Diaz")

	require.Len(t, sub.calls, 1)
	assert.Equal(t, leads.Lead{Name: "Ana Diaz", Email: "ana@example.com"}, sub.calls[0])
}

func TestContact_FailureKeepsValues(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("Error al enviar el formulario")}
	s := newTestServer(t, sub)

	rec := postContact(s, url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "message": {"hola"}}, false)

	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Error al enviar el formulario")
	assert.Contains(t, body, `value="Ana"`)
	assert.Contains(t, body, ">hola</textarea>")
	assert.Len(t, sub.calls, 1)
}

func TestContactForm_DisablesSubmitWhileInFlight(t *testing.T) {
	s := newTestServer(t, &fakeSubmitter{})

	page := httptest.NewRecorder()
	s.Handler().ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/", nil))
	fragment := postContact(s, url.Values{"name": {"A"}}, true)

	for _, body := range []string{page.Body.String(), fragment.Body.String()} {
		assert.Contains(t, body, `hx-disabled-elt="#contact-submit"`)
		assert.Contains(t, body, `hx-sync="this:drop"`)
		assert.Contains(t, body, `data-disable-on-submit`)
		assert.Contains(t, body, `<button type="submit" id="contact-submit">`)
	}

	script := httptest.NewRecorder()
	s.Handler().ServeHTTP(script, httptest.NewRequest(http.MethodGet, "/static/site.js", nil))
	require.Equal(t, http.StatusOK, script.Code)
	assert.Contains(t, script.Body.String(), "data-disable-on-submit")
	assert.Contains(t, script.Body.String(), "b.disabled = true")
}
