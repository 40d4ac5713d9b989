package mailer

import (
	"context"
	"log/slog"
)

// Mailer sends transactional mail for KYC and reservation decisions.
// Sending is best-effort and never blocks the originating transition.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ConsoleMailer writes mail to the log. It is the default implementation;
// an SMTP or provider-backed one can replace it behind the same interface.
type ConsoleMailer struct {
	logger *slog.Logger
}

func NewConsoleMailer(logger *slog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("sending mail",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
