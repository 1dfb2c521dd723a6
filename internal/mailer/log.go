package mailer

import (
	"context"

	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
)

var _ model.Mailer = (*LogMailer)(nil)

// LogMailer writes mail to the log instead of delivering it. Used when no
// SMTP relay is configured, typically in development.
type LogMailer struct {
	logger *logger.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *logger.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info("mail delivery skipped, no SMTP relay configured",
		"to", to,
		"subject", subject,
		"body", body)
	return nil
}
