package request

import (
	"time"

	"brow-studio-api/internal/domain/slot"
)

type CreateSlotsRequest struct {
	StartAt         time.Time `json:"start_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1"`
	Count           int       `json:"count" binding:"required,min=1"`
}

func (r CreateSlotsRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

type CreateTemplateRequest struct {
	DaysOfWeek      []int  `json:"days_of_week" binding:"required,min=1"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required,min=1"`
}

func (r CreateTemplateRequest) ToDomain() (slot.Recurrence, error) {
	return slot.NewRecurrence(r.DaysOfWeek, r.StartTime, r.EndTime, r.IntervalMinutes)
}
