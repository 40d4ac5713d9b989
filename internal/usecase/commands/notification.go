package commands

import (
	"context"
	"log/slog"

	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type NotificationCommands interface {
	MarkRead(ctx context.Context, userID uuid.UUID, isAdmin bool, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, isAdmin bool) error
}

type notificationCommandsImpl struct {
	notificationRepo NotificationRepository
	logger           *slog.Logger
}

func NewNotificationCommands(notificationRepo NotificationRepository, logger *slog.Logger) NotificationCommands {
	return &notificationCommandsImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// MarkRead flips a single entry after checking the caller may see it. Admins
// read the admin feed, customers only their own.
func (n *notificationCommandsImpl) MarkRead(ctx context.Context, userID uuid.UUID, isAdmin bool, notificationID uuid.UUID) error {
	recipient, err := n.notificationRepo.FindRecipient(ctx, notificationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrNotificationNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !visibleTo(recipient, userID, isAdmin) {
		return errs.ErrNotRecipient
	}

	if err := n.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrNotificationNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// MarkAllRead clears the caller's whole feed.
func (n *notificationCommandsImpl) MarkAllRead(ctx context.Context, userID uuid.UUID, isAdmin bool) error {
	recipient := notification.UserRecipient(userID)
	if isAdmin {
		recipient = notification.AdminRecipient()
	}
	if err := n.notificationRepo.MarkAllRead(ctx, recipient); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func visibleTo(recipient notification.Recipient, userID uuid.UUID, isAdmin bool) bool {
	switch recipient.Kind() {
	case notification.RecipientKindAdmin:
		return isAdmin
	case notification.RecipientKindUser:
		return recipient.UserID() == userID
	default:
		return false
	}
}
