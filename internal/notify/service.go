package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/SebasPM15/landing-personal/internal/leads"
	"github.com/SebasPM15/landing-personal/pkg/logging"
)

// ErrNoRecipient is returned when the owner address is not configured.
var ErrNoRecipient = errors.New("notify: owner email is required")

// LeadNotifier emails the site owner about each stored lead. Replies go
// straight to the visitor.
type LeadNotifier struct {
	email  EmailSender
	to     string
	logger *logging.Logger
}

// NewLeadNotifier returns a notifier that mails owner through email.
func NewLeadNotifier(email EmailSender, owner string, logger *logging.Logger) (*LeadNotifier, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrNoRecipient
	}
	if email == nil {
		return nil, errors.New("notify: email sender is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadNotifier{email: email, to: strings.TrimSpace(owner), logger: logger}, nil
}

// LeadSubmitted implements leads.Notifier.
func (n *LeadNotifier) LeadSubmitted(ctx context.Context, lead leads.Lead) error {
	msg := BuildLeadEmail(lead)
	msg.To = n.to
	if err := n.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead email: %w", err)
	}
	n.logger.Debug("lead notification sent", "to", n.to)
	return nil
}

// BuildLeadEmail renders the owner notification for lead. Visitor input is
// escaped in the HTML part.
func BuildLeadEmail(lead leads.Lead) EmailMessage {
	name := strings.TrimSpace(lead.Name)
	if name == "" {
		name = "(sin nombre)"
	}

	type line struct{ label, value string }
	lines := []line{{"Nombre", name}, {"Email", lead.Email}}
	if lead.Phone != "" {
		lines = append(lines, line{"Teléfono", lead.Phone})
	}

	var text, markup strings.Builder
	const intro = "Nuevo mensaje desde el formulario de contacto del portafolio:"
	text.WriteString(intro + "\n\n")
	markup.WriteString("<p>" + intro + "</p>\n<p>")
	for i, l := range lines {
		fmt.Fprintf(&text, "%s: %s\n", l.label, l.value)
		if i > 0 {
			markup.WriteString("<br>")
		}
		fmt.Fprintf(&markup, "<strong>%s:</strong> %s", l.label, html.EscapeString(l.value))
	}
	markup.WriteString("</p>")
	if lead.Message != "" {
		fmt.Fprintf(&text, "Mensaje:\n%s\n", lead.Message)
		markup.WriteString("\n<p><strong>Mensaje:</strong><br>")
		markup.WriteString(escapeMultiline(lead.Message))
		markup.WriteString("</p>")
	}

	msg := EmailMessage{
		Subject: "Nuevo lead: " + name,
		Text:    text.String(),
		HTML:    markup.String(),
	}
	if strings.Contains(lead.Email, "@") {
		msg.ReplyTo = strings.TrimSpace(lead.Email)
	}
	return msg
}

func escapeMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = html.EscapeString(p)
	}
	return strings.Join(parts, "<br>")
}
