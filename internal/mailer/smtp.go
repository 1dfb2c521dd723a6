// Package mailer implements outbound mail delivery. Delivery is best
// effort: callers treat failures as log-and-continue, never as a reason to
// roll back application state.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/tronghn/taskhub/internal/model"
)

var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates a mailer for the given relay. Auth is only
// configured when a username is set.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPMailer{
		addr: host + ":" + port,
		from: from,
		auth: auth,
	}
}

// Send delivers a single plain-text message.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}
