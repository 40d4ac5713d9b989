//go:build unit

package builder

import (
	"time"

	domreservation "brow-studio-api/internal/domain/reservation"
	domuser "brow-studio-api/internal/domain/user"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	UserID        uuid.UUID
	UserEmail     string
	UserName      string
	SlotID        uuid.UUID
	SlotStartAt   time.Time
	SlotEndAt     time.Time
	Now           time.Time
	PaymentWindow time.Duration
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	start := now.Add(48 * time.Hour)
	return &ReservationBuilder{
		UserID:        uuid.New(),
		UserEmail:     "customer@example.com",
		UserName:      "Kim Jiyoung",
		SlotID:        uuid.New(),
		SlotStartAt:   start,
		SlotEndAt:     start.Add(90 * time.Minute),
		Now:           now,
		PaymentWindow: 30 * time.Minute,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() *domreservation.Reservation {
	email, _ := domuser.NewEmail(b.UserEmail)
	return domreservation.NewReservation(
		b.UserID,
		email,
		b.UserName,
		domreservation.SlotSnapshot{ID: b.SlotID, StartAt: b.SlotStartAt, EndAt: b.SlotEndAt},
		b.Now,
		b.PaymentWindow,
	)
}
