package repository

import (
	"context"
	"time"

	"brow-studio-api/internal/domain/slot"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var slotColumns = []string{
	"id", "kind", "start_at", "end_at",
	"days_of_week", "start_time", "end_time", "interval_minutes",
	"status", "template_id", "created_by", "created_at",
}

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

func (r *SlotRepository) dbtx(tx db.DBTX) db.DBTX {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *SlotRepository) CreateBatch(ctx context.Context, tx db.DBTX, slots []*slot.Slot) error {
	builder := psql.Insert("slots").Columns(
		"id", "kind", "start_at", "end_at",
		"days_of_week", "start_time", "end_time", "interval_minutes",
		"status", "template_id", "created_by",
	)
	for _, s := range slots {
		builder = builder.Values(slotInsertValues(s)...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot insert", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create slots", err)
	}
	return nil
}

// CreateOccurrences inserts materialized template occurrences, silently
// skipping any (template_id, start_at) pair that already exists. Returns the
// number of rows actually inserted.
func (r *SlotRepository) CreateOccurrences(ctx context.Context, tx db.DBTX, slots []*slot.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	builder := psql.Insert("slots").Columns(
		"id", "kind", "start_at", "end_at",
		"days_of_week", "start_time", "end_time", "interval_minutes",
		"status", "template_id", "created_by",
	)
	for _, s := range slots {
		builder = builder.Values(slotInsertValues(s)...)
	}
	query, args, err := builder.
		Suffix("ON CONFLICT (template_id, start_at) WHERE template_id IS NOT NULL DO NOTHING").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build occurrence insert", err)
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create occurrences", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*slot.Slot, error) {
	query, args, err := psql.Select(slotColumns...).
		From("slots").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build slot select", err)
	}

	s, err := scanSlot(r.dbtx(dbtx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}
	return s, nil
}

// Reserve is the booking CAS: the status guard makes exactly one concurrent
// caller win. Zero rows affected means the slot was taken, missing, or a
// template, reported as CONFLICT.
func (r *SlotRepository) Reserve(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query, args, err := psql.Update("slots").
		Set("status", slot.StatusBooked).
		Where(sq.Eq{"id": id, "status": slot.StatusAvailable, "kind": slot.KindCustom}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot reserve", err)
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot is not available", nil, infra.KindConflict)
	}
	return nil
}

// Release returns a booked slot to the pool. A missing row is not an error:
// the slot may have been hard-deleted under an active reservation.
func (r *SlotRepository) Release(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query, args, err := psql.Update("slots").
		Set("status", slot.StatusAvailable).
		Where(sq.Eq{"id": id, "status": slot.StatusBooked}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot release", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to release slot", err)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query, args, err := psql.Delete("slots").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot delete", err)
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SlotRepository) ListTemplates(ctx context.Context, dbtx db.DBTX) ([]*slot.Slot, error) {
	query, args, err := psql.Select(slotColumns...).
		From("slots").
		Where(sq.Eq{"kind": slot.KindRecurring}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build template select", err)
	}

	rows, err := r.dbtx(dbtx).Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list templates", err)
	}
	defer rows.Close()

	var out []*slot.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan template", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate templates", err)
	}
	return out, nil
}

func slotInsertValues(s *slot.Slot) []any {
	var startAt, endAt *time.Time
	if !s.TimeRange().Start().IsZero() {
		st, en := s.TimeRange().Start(), s.TimeRange().End()
		startAt, endAt = &st, &en
	}

	var days []int32
	var startTime, endTime *string
	var interval *int32
	if rec := s.Recurrence(); rec != nil {
		for _, d := range rec.DaysOfWeek() {
			days = append(days, int32(d))
		}
		st, en := rec.StartTime(), rec.EndTime()
		iv := int32(rec.IntervalMinutes())
		startTime, endTime, interval = &st, &en, &iv
	}

	return []any{
		s.ID(), s.Kind(), startAt, endAt,
		days, startTime, endTime, interval,
		s.Status(), s.TemplateID(), s.CreatedBy(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*slot.Slot, error) {
	var (
		id, createdBy     uuid.UUID
		kind, status      string
		startAt, endAt    *time.Time
		days              []int32
		startTime, endTime *string
		interval          *int32
		templateID        *uuid.UUID
		createdAt         time.Time
	)
	if err := row.Scan(
		&id, &kind, &startAt, &endAt,
		&days, &startTime, &endTime, &interval,
		&status, &templateID, &createdBy, &createdAt,
	); err != nil {
		return nil, err
	}

	var timeRange slot.TimeRange
	if startAt != nil && endAt != nil {
		tr, err := slot.NewTimeRange(*startAt, *endAt)
		if err != nil {
			return nil, err
		}
		timeRange = tr
	}

	var recurrence *slot.Recurrence
	if startTime != nil && endTime != nil && interval != nil {
		ds := make([]int, len(days))
		for i, d := range days {
			ds[i] = int(d)
		}
		rec, err := slot.NewRecurrence(ds, *startTime, *endTime, int(*interval))
		if err != nil {
			return nil, err
		}
		recurrence = &rec
	}

	return slot.ReconstructSlot(
		id, slot.Kind(kind), timeRange, recurrence,
		slot.Status(status), templateID, createdBy, createdAt,
	), nil
}
