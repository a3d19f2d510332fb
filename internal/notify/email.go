package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SebasPM15/landing-personal/pkg/logging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridMailPath = "/v3/mail/send"
	defaultFromName  = "Portfolio"
)

// ErrSenderNotConfigured is returned by a SendGridSender built without an API key.
var ErrSenderNotConfigured = errors.New("notify: sendgrid sender not configured")

// EmailSender delivers one owner notification.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is a notification addressed to the site owner. Text is always
// sent; HTML is added as a second part only when set, and must already be
// escaped.
type EmailMessage struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// SendGridConfig holds the SendGrid account settings.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	// Host overrides the API host, e.g. for a local fake.
	Host string
}

// SendGridSender posts messages to the SendGrid v3 mail API. Each call builds
// its own request, so one sender can serve concurrent submissions.
type SendGridSender struct {
	apiKey string
	host   string
	from   *mail.Email
	logger *logging.Logger
}

// NewSendGridSender returns nil when no API key is configured.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	name := strings.TrimSpace(cfg.FromName)
	if name == "" {
		name = defaultFromName
	}
	return &SendGridSender{
		apiKey: cfg.APIKey,
		host:   strings.TrimRight(cfg.Host, "/"),
		from:   mail.NewEmail(name, cfg.FromEmail),
		logger: logger.With("component", "sendgrid"),
	}
}

// Send delivers msg and treats any status of 400 or above as a failure.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.apiKey == "" {
		return ErrSenderNotConfigured
	}

	req := sendgrid.GetRequest(s.apiKey, sendGridMailPath, s.host)
	req.Method = "POST"
	req.Body = mail.GetRequestBody(s.build(msg))

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		s.logger.Error("lead email failed", "error", err)
		return fmt.Errorf("notify: sendgrid request: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.logger.Error("lead email rejected", "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("notify: sendgrid returned status %d", resp.StatusCode)
	}

	s.logger.Debug("lead email accepted", "status", resp.StatusCode)
	return nil
}

func (s *SendGridSender) build(msg EmailMessage) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(s.from)
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	m.AddPersonalizations(p)

	m.AddContent(mail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}
	if msg.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}
	return m
}
