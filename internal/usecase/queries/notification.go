package queries

import (
	"context"

	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/pkg/errs"

	"github.com/google/uuid"
)

const defaultFeedLimit = 50

type NotificationQueries interface {
	ListFeed(ctx context.Context, userID uuid.UUID, isAdmin bool, limit int32) ([]*NotificationView, error)
	CountUnread(ctx context.Context, userID uuid.UUID, isAdmin bool) (int64, error)
}

type notificationQueriesImpl struct {
	readStore NotificationReadStore
}

func NewNotificationQueries(readStore NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{readStore: readStore}
}

func feedRecipient(userID uuid.UUID, isAdmin bool) notification.Recipient {
	if isAdmin {
		return notification.AdminRecipient()
	}
	return notification.UserRecipient(userID)
}

func (n *notificationQueriesImpl) ListFeed(ctx context.Context, userID uuid.UUID, isAdmin bool, limit int32) ([]*NotificationView, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	views, err := n.readStore.FindByRecipient(ctx, feedRecipient(userID, isAdmin), limit)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (n *notificationQueriesImpl) CountUnread(ctx context.Context, userID uuid.UUID, isAdmin bool) (int64, error) {
	count, err := n.readStore.CountUnread(ctx, feedRecipient(userID, isAdmin))
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return count, nil
}
