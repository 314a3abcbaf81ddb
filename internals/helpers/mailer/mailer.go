// Package mailer sends plain notification mail through SendGrid, or to the
// log when no API key is configured.
package mailer

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"surveyhub_backend/internals/logger"
)

type Message struct {
	To      []mail.Address
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks SendGrid when apiKey is set and the console sender otherwise.
func New(apiKey, appName, fromEmail, fromName string) Sender {
	if strings.TrimSpace(apiKey) == "" {
		return Console{}
	}
	if fromName == "" {
		fromName = appName
	}
	return &SendGrid{
		client:     sendgrid.NewSendClient(apiKey),
		from:       sgmail.NewEmail(fromName, fromEmail),
		subjPrefix: "[" + appName + "] ",
	}
}

/* ===================== SendGrid ===================== */

type SendGrid struct {
	client     *sendgrid.Client
	from       *sgmail.Email
	subjPrefix string
}

// MaxRecipients is SendGrid's cap on to, cc and bcc addresses in one request.
const MaxRecipients = 1000

// Build renders msg as v3 payloads. Recipients go in BCC so schools never
// see each other's addresses; the sender is the single To, so each payload
// carries at most MaxRecipients-1 of them.
func (s *SendGrid) Build(msg Message) []*sgmail.SGMailV3 {
	const batch = MaxRecipients - 1

	out := make([]*sgmail.SGMailV3, 0, (len(msg.To)+batch-1)/batch)
	for start := 0; start < len(msg.To); start += batch {
		end := min(start+batch, len(msg.To))

		p := sgmail.NewPersonalization()
		p.Subject = s.subjPrefix + msg.Subject
		p.AddTos(s.from)
		for _, to := range msg.To[start:end] {
			p.AddBCCs(sgmail.NewEmail(to.Name, to.Address))
		}

		m := sgmail.NewV3Mail()
		m.SetFrom(s.from)
		m.AddPersonalizations(p)
		m.AddContent(sgmail.NewContent("text/plain", msg.Text))
		if msg.HTML != "" {
			m.AddContent(sgmail.NewContent("text/html", msg.HTML))
		}
		out = append(out, m)
	}
	return out
}

// Send posts every batch even when one fails and reports the first failure.
func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	var first error
	for i, m := range s.Build(msg) {
		if err := s.post(ctx, m); err != nil {
			logger.WithError(err).Errorf("[MAIL] batch %d failed", i+1)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (s *SendGrid) post(ctx context.Context, m *sgmail.SGMailV3) error {
	res, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return errors.Wrap(err, "sendgrid send")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid send: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

/* ===================== Console ===================== */

type Console struct{}

func (Console) Send(_ context.Context, msg Message) error {
	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, a.Address)
	}
	logger.WithFields(logrus.Fields{
		"to":      strings.Join(to, ","),
		"subject": msg.Subject,
	}).Info("[MAIL] " + msg.Text)
	return nil
}
