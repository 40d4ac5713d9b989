package commands

import (
	"context"
	"time"

	"brow-studio-api/internal/domain/kyc"
	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/domain/reservation"
	"brow-studio-api/internal/domain/slot"
	"brow-studio-api/internal/domain/user"
	"brow-studio-api/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side ports. Methods that take a db.DBTX participate in the caller's
// transaction; the rest run on the pool directly.

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type SlotRepository interface {
	CreateBatch(ctx context.Context, tx db.DBTX, slots []*slot.Slot) error
	CreateOccurrences(ctx context.Context, tx db.DBTX, slots []*slot.Slot) (int64, error)
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*slot.Slot, error)
	Reserve(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	Release(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	ListTemplates(ctx context.Context, dbtx db.DBTX) ([]*slot.Slot, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	FindActiveByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*reservation.Reservation, error)
	FindExpired(ctx context.Context, dbtx db.DBTX, now time.Time, limit int32) ([]*reservation.Reservation, error)
}

type KycRepository interface {
	Save(ctx context.Context, tx db.DBTX, rec *kyc.Record) error
	FindByUserID(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*kyc.Record, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, tx db.DBTX, n *notification.Notification) error
	FindRecipient(ctx context.Context, id uuid.UUID) (notification.Recipient, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipient notification.Recipient) error
}

// EventPublisher pushes committed notifications onto the live channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// Mailer mirrors infra/mailer without importing it.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
