package commands

import (
	"context"
	"log/slog"

	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/pkg/metrics"
)

// Notifier appends feed entries inside the caller's transaction and, after
// commit, pushes them to subscribers over the live channel. The insert shares
// the transition's fate; the publish is best-effort.
type Notifier struct {
	repo      NotificationRepository
	publisher EventPublisher
	mailer    Mailer
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewNotifier(repo NotificationRepository, publisher EventPublisher, mailer Mailer, m *metrics.Metrics, logger *slog.Logger) *Notifier {
	return &Notifier{
		repo:      repo,
		publisher: publisher,
		mailer:    mailer,
		metrics:   m,
		logger:    logger,
	}
}

func (n *Notifier) Emit(
	ctx context.Context,
	tx db.DBTX,
	recipient notification.Recipient,
	notifType notification.Type,
	title, message string,
	data map[string]any,
) (*notification.Notification, error) {
	entry, err := notification.NewNotification(recipient, notifType, title, message, data)
	if err != nil {
		return nil, err
	}
	if err := n.repo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}
	n.metrics.IncrementEmitted(string(recipient.Kind()))
	return entry, nil
}

// Broadcast publishes committed entries. Failures are logged and swallowed;
// the feed row is already durable.
func (n *Notifier) Broadcast(ctx context.Context, entries ...*notification.Notification) {
	if n.publisher == nil {
		return
	}
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		channel := "notifications:" + entry.Recipient().String()
		if err := n.publisher.Publish(ctx, channel, map[string]any{
			"id":      entry.ID(),
			"type":    entry.Type(),
			"title":   entry.Title(),
			"message": entry.Message(),
		}); err != nil {
			n.metrics.IncrementSideEffectFailure("publish")
			n.logger.Warn("failed to publish notification",
				slog.String("channel", channel),
				slog.String("error", err.Error()),
			)
		}
	}
}

// SendMail delivers a decision email best-effort.
func (n *Notifier) SendMail(ctx context.Context, to, subject, body string) {
	if n.mailer == nil {
		return
	}
	if err := n.mailer.Send(ctx, to, subject, body); err != nil {
		n.metrics.IncrementSideEffectFailure("mail")
		n.logger.Warn("failed to send mail",
			slog.String("to", to),
			slog.String("error", err.Error()),
		)
	}
}
