package queries

import (
	"context"
	"time"

	"brow-studio-api/internal/domain/notification"

	"github.com/google/uuid"
)

// Read-side ports, implemented by the infra read stores.

type SlotReadStore interface {
	FindAvailable(ctx context.Context, from, to time.Time) ([]*SlotView, error)
	FindAll(ctx context.Context) ([]*SlotView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
	FindAll(ctx context.Context, status *string) ([]*ReservationView, error)
}

type KycReadStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*KycView, error)
	FindAll(ctx context.Context, status *string) ([]*KycView, error)
}

type NotificationReadStore interface {
	FindByRecipient(ctx context.Context, recipient notification.Recipient, limit int32) ([]*NotificationView, error)
	CountUnread(ctx context.Context, recipient notification.Recipient) (int64, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
}
