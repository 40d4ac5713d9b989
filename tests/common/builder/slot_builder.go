//go:build unit

package builder

import (
	"time"

	domslot "brow-studio-api/internal/domain/slot"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	CreatedBy uuid.UUID
	Now       time.Time

	// custom batch
	StartAt  time.Time
	Duration time.Duration
	Count    int

	// recurring template
	DaysOfWeek      []int
	StartTime       string
	EndTime         string
	IntervalMinutes int
}

func NewSlotBuilder() *SlotBuilder {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &SlotBuilder{
		CreatedBy:       uuid.New(),
		Now:             now,
		StartAt:         now.Add(24 * time.Hour),
		Duration:        90 * time.Minute,
		Count:           3,
		DaysOfWeek:      []int{1, 3, 5},
		StartTime:       "10:00",
		EndTime:         "16:00",
		IntervalMinutes: 90,
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) BuildCustomSlots() ([]*domslot.Slot, error) {
	return domslot.NewCustomSlots(b.CreatedBy, b.StartAt, b.Duration, b.Count, b.Now)
}

func (b *SlotBuilder) BuildRecurrence() (domslot.Recurrence, error) {
	return domslot.NewRecurrence(b.DaysOfWeek, b.StartTime, b.EndTime, b.IntervalMinutes)
}

func (b *SlotBuilder) BuildTemplate() (*domslot.Slot, error) {
	rec, err := b.BuildRecurrence()
	if err != nil {
		return nil, err
	}
	return domslot.NewRecurringTemplate(b.CreatedBy, rec), nil
}
