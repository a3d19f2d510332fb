// Package site serves the portfolio page and its contact form.
package site

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SebasPM15/landing-personal/internal/contactform"
	"github.com/SebasPM15/landing-personal/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ErrNilSubmitter is returned when the server has nowhere to send leads.
var ErrNilSubmitter = errors.New("site: submitter is required")

// Config wires the site server.
type Config struct {
	Content        *Content
	Submitter      contactform.Submitter
	Logger         *logging.Logger
	SuccessDisplay time.Duration
}

// Server renders the portfolio page.
type Server struct {
	engine         *gin.Engine
	content        *Content
	submitter      contactform.Submitter
	logger         *logging.Logger
	successDisplay time.Duration
	now            func() time.Time
}

type formView struct {
	Fields           contactform.Fields
	Errors           contactform.FieldErrors
	Success          string
	Error            string
	DismissAfterMs   int64
	MaxMessageLength int
}

type pageView struct {
	Content     *Content
	SkillGroups []SkillGroup
	Form        formView
	Year        int
}

// New builds the gin engine with templates and routes. A nil Content falls
// back to the embedded document.
func New(cfg Config) (*Server, error) {
	if cfg.Submitter == nil {
		return nil, ErrNilSubmitter
	}
	content := cfg.Content
	if content == nil {
		var err error
		if content, err = DefaultContent(); err != nil {
			return nil, err
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	display := cfg.SuccessDisplay
	if display <= 0 {
		display = contactform.SuccessDisplay
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	s := &Server{
		content:        content,
		submitter:      cfg.Submitter,
		logger:         logger,
		successDisplay: display,
		now:            time.Now,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.index)
	r.POST("/contact", s.contact)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine = r
	return s, nil
}

// Handler exposes the engine for http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page(s.emptyForm()))
}

func (s *Server) contact(c *gin.Context) {
	fields := contactform.Fields{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Phone:   c.PostForm("phone"),
		Message: c.PostForm("message"),
	}

	form := contactform.New(s.submitter, contactform.WithSuccessDisplay(s.successDisplay))
	defer form.Close()
	form.Set(fields)

	view := s.emptyForm()
	confirmation, err := form.Submit(c.Request.Context())
	var verr *contactform.ValidationError
	switch {
	case errors.As(err, &verr):
		view.Errors = verr.Fields
	case err != nil:
		s.logger.Warn("contact submission failed", "error", err)
	default:
		s.logger.Info("contact submission accepted")
	}

	snap := form.Snapshot()
	view.Fields = snap.Fields
	view.Error = snap.Error
	if snap.State == contactform.StateSuccess {
		view.Success = confirmation
	}

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "contact.html", view)
		return
	}
	c.HTML(http.StatusOK, "index.html", s.page(view))
}

func (s *Server) emptyForm() formView {
	return formView{
		DismissAfterMs:   s.successDisplay.Milliseconds(),
		MaxMessageLength: contactform.MaxMessageLength,
	}
}

func (s *Server) page(form formView) pageView {
	return pageView{
		Content:     s.content,
		SkillGroups: s.content.SkillGroups(),
		Form:        form,
		Year:        s.now().Year(),
	}
}

func requestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"remote_ip", c.ClientIP(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
