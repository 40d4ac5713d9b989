package readstore

import (
	"context"
	"encoding/json"

	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
)

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(dbtx db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: dbtx}
}

func (r *NotificationReadStore) FindByRecipient(ctx context.Context, recipient notification.Recipient, limit int32) ([]*queries.NotificationView, error) {
	query, args, err := psql.Select("id", "recipient", "type", "title", "message", "read", "data", "created_at").
		From("notifications").
		Where(sq.Eq{"recipient": recipient.String()}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build notification select", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query notifications", err)
	}
	defer rows.Close()

	var out []*queries.NotificationView
	for rows.Next() {
		var (
			view queries.NotificationView
			raw  []byte
		)
		if err := rows.Scan(
			&view.ID, &view.Recipient, &view.Type, &view.Title,
			&view.Message, &view.Read, &raw, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &view.Data); err != nil {
				return nil, infra.WrapRepoErr("failed to unmarshal notification data", err)
			}
		}
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notifications", err)
	}
	return out, nil
}

func (r *NotificationReadStore) CountUnread(ctx context.Context, recipient notification.Recipient) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("notifications").
		Where(sq.Eq{"recipient": recipient.String(), "read": false}).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build unread count select", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err)
	}
	return count, nil
}
