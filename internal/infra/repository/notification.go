package repository

import (
	"context"
	"encoding/json"

	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) Create(ctx context.Context, tx db.DBTX, n *notification.Notification) error {
	var data []byte
	if n.Data() != nil {
		var err error
		data, err = json.Marshal(n.Data())
		if err != nil {
			return infra.WrapRepoErr("failed to marshal notification data", err)
		}
	}

	query, args, err := psql.Insert("notifications").
		Columns("id", "recipient", "type", "title", "message", "read", "data").
		Values(n.ID(), n.Recipient().String(), n.Type(), n.Title(), n.Message(), n.Read(), data).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification insert", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create notification", err)
	}
	return nil
}

// FindRecipient returns only the addressing of an entry, enough for the
// read-permission check without loading the payload.
func (r *NotificationRepository) FindRecipient(ctx context.Context, id uuid.UUID) (notification.Recipient, error) {
	query, args, err := psql.Select("recipient").
		From("notifications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return notification.Recipient{}, infra.WrapRepoErr("failed to build recipient select", err)
	}

	var stored string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&stored); err != nil {
		return notification.Recipient{}, infra.WrapRepoErr("failed to find notification", err)
	}
	return notification.ParseRecipient(stored)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Update("notifications").
		Set("read", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build mark read update", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipient notification.Recipient) error {
	query, args, err := psql.Update("notifications").
		Set("read", true).
		Where(sq.Eq{"recipient": recipient.String(), "read": false}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build mark all read update", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to mark notifications read", err)
	}
	return nil
}
