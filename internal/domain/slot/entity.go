package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotBookable    = errors.New("slot is not bookable")
	ErrNotBooked      = errors.New("slot is not booked")
	ErrNotATemplate   = errors.New("slot is not a recurring template")
	ErrStartInThePast = errors.New("start must not be in the past")
)

type Slot struct {
	id         uuid.UUID
	kind       Kind
	timeRange  TimeRange // zero value for recurring templates
	recurrence *Recurrence
	status     Status
	templateID *uuid.UUID // set on materialized occurrences
	createdBy  uuid.UUID
	createdAt  time.Time
}

// NewCustomSlots produces count contiguous available slots of duration each,
// back-to-back starting at start.
func NewCustomSlots(createdBy uuid.UUID, start time.Time, duration time.Duration, count int, now time.Time) ([]*Slot, error) {
	if start.IsZero() {
		return nil, ErrZeroStart
	}
	if duration < time.Minute {
		return nil, ErrInvalidDuration
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if start.Before(now) {
		return nil, ErrStartInThePast
	}

	slots := make([]*Slot, count)
	cur := start
	for i := range slots {
		r, err := NewTimeRange(cur, cur.Add(duration))
		if err != nil {
			return nil, err
		}
		slots[i] = &Slot{
			id:        uuid.New(),
			kind:      KindCustom,
			timeRange: r,
			status:    StatusAvailable,
			createdBy: createdBy,
		}
		cur = cur.Add(duration)
	}
	return slots, nil
}

// NewRecurringTemplate stores the weekly pattern as a single registry entry.
// The template itself is never bookable; the materializer expands it.
func NewRecurringTemplate(createdBy uuid.UUID, rec Recurrence) *Slot {
	r := rec
	return &Slot{
		id:         uuid.New(),
		kind:       KindRecurring,
		recurrence: &r,
		status:     StatusAvailable,
		createdBy:  createdBy,
	}
}

// Materialize produces a concrete bookable occurrence of a template.
func (s *Slot) Materialize(r TimeRange) (*Slot, error) {
	if s.kind != KindRecurring {
		return nil, ErrNotATemplate
	}
	templateID := s.id
	return &Slot{
		id:         uuid.New(),
		kind:       KindCustom,
		timeRange:  r,
		status:     StatusAvailable,
		templateID: &templateID,
		createdBy:  s.createdBy,
	}, nil
}

func ReconstructSlot(
	id uuid.UUID,
	kind Kind,
	timeRange TimeRange,
	recurrence *Recurrence,
	status Status,
	templateID *uuid.UUID,
	createdBy uuid.UUID,
	createdAt time.Time,
) *Slot {
	return &Slot{
		id:         id,
		kind:       kind,
		timeRange:  timeRange,
		recurrence: recurrence,
		status:     status,
		templateID: templateID,
		createdBy:  createdBy,
		createdAt:  createdAt,
	}
}

func (s *Slot) ID() uuid.UUID           { return s.id }
func (s *Slot) Kind() Kind              { return s.kind }
func (s *Slot) TimeRange() TimeRange    { return s.timeRange }
func (s *Slot) Recurrence() *Recurrence { return s.recurrence }
func (s *Slot) Status() Status          { return s.status }
func (s *Slot) TemplateID() *uuid.UUID  { return s.templateID }
func (s *Slot) CreatedBy() uuid.UUID    { return s.createdBy }
func (s *Slot) CreatedAt() time.Time    { return s.createdAt }

func (s *Slot) IsTemplate() bool { return s.kind == KindRecurring }

func (s *Slot) IsBookable() bool {
	return s.kind == KindCustom && s.status == StatusAvailable
}

// Reserve flips an available concrete slot to booked. The persistence layer
// additionally guards this transition with a conditional update so exactly
// one concurrent booker wins.
func (s *Slot) Reserve() error {
	if !s.IsBookable() {
		return ErrNotBookable
	}
	s.status = StatusBooked
	return nil
}

// Release flips a booked slot back to available when its reservation is
// cancelled, rejected, or deleted.
func (s *Slot) Release() error {
	if s.status != StatusBooked {
		return ErrNotBooked
	}
	s.status = StatusAvailable
	return nil
}
