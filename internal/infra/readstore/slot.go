package readstore

import (
	"context"
	"time"

	"brow-studio-api/internal/domain/slot"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var slotViewColumns = []string{
	"id", "kind", "start_at", "end_at",
	"days_of_week", "start_time", "end_time", "interval_minutes",
	"status", "template_id", "created_at",
}

type SlotReadStore struct {
	db  db.DBTX
	loc *time.Location
}

func NewSlotReadStore(dbtx db.DBTX, loc *time.Location) *SlotReadStore {
	return &SlotReadStore{db: dbtx, loc: loc}
}

// FindAvailable lists bookable slots starting inside [from, to).
// Templates never appear here.
func (r *SlotReadStore) FindAvailable(ctx context.Context, from, to time.Time) ([]*queries.SlotView, error) {
	query, args, err := psql.Select(slotViewColumns...).
		From("slots").
		Where(sq.Eq{"kind": slot.KindCustom, "status": slot.StatusAvailable}).
		Where(sq.GtOrEq{"start_at": from}).
		Where(sq.Lt{"start_at": to}).
		OrderBy("start_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build available slot select", err)
	}
	return r.list(ctx, query, args)
}

func (r *SlotReadStore) FindAll(ctx context.Context) ([]*queries.SlotView, error) {
	query, args, err := psql.Select(slotViewColumns...).
		From("slots").
		OrderBy("kind DESC", "start_at NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build slot select", err)
	}
	return r.list(ctx, query, args)
}

func (r *SlotReadStore) list(ctx context.Context, query string, args []any) ([]*queries.SlotView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query slots", err)
	}
	defer rows.Close()

	var out []*queries.SlotView
	for rows.Next() {
		var (
			view       queries.SlotView
			days       []int32
			interval   *int32
			templateID *uuid.UUID
		)
		if err := rows.Scan(
			&view.ID, &view.Kind, &view.StartAt, &view.EndAt,
			&days, &view.StartTime, &view.EndTime, &interval,
			&view.Status, &templateID, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		for _, d := range days {
			view.DaysOfWeek = append(view.DaysOfWeek, int(d))
		}
		if interval != nil {
			iv := int(*interval)
			view.IntervalMinutes = &iv
		}
		view.TemplateID = templateID
		if view.StartAt != nil && view.EndAt != nil {
			view.DisplayDate = queries.FormatDisplayDate(*view.StartAt, r.loc)
			view.DisplayTime = queries.FormatDisplayTime(*view.StartAt, *view.EndAt, r.loc)
		}
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slots", err)
	}
	return out, nil
}
