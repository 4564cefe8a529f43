package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun sends through the Mailgun HTTP API.
type Mailgun struct {
	client  *mg.MailgunImpl
	from    string
	tag     string
	timeout time.Duration
}

// NewMailgun builds the client once. apiBase is optional and selects another
// region (mg.APIBaseEU); tag is attached to every message when set.
func NewMailgun(domain, apiKey, sender, apiBase, tag string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{client: client, from: sender, tag: tag, timeout: 10 * time.Second}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.from, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if m.tag != "" {
		if err := msg.AddTag(m.tag); err != nil {
			return err
		}
	}
	c, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}

// LogSender only logs what would have been sent. The worker uses it when
// MAIL_SEND_ENABLED is off so queued jobs are still drained and rendered.
type LogSender struct {
	Logger logrus.FieldLogger
}

func (l LogSender) Send(_ context.Context, to, subject, text, _ string) error {
	l.Logger.WithFields(logrus.Fields{"to": to, "subject": subject, "bytes": len(text)}).Info("email send skipped")
	return nil
}

var (
	_ Sender = (*Mailgun)(nil)
	_ Sender = LogSender{}
)
