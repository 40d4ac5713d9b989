package readstore

import (
	"context"
	"errors"
	"time"

	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var reservationViewColumns = []string{
	"id", "slot_id", "user_id", "user_email", "user_name",
	"slot_start_at", "slot_end_at", "status",
	"payment_confirmed", "payment_confirmed_at", "payment_deadline",
	"reject_reason", "rejected_at", "delete_reason", "deleted_at",
	"created_at",
}

type ReservationReadStore struct {
	db             db.DBTX
	loc            *time.Location
	approvalWindow time.Duration
}

func NewReservationReadStore(dbtx db.DBTX, loc *time.Location, approvalWindow time.Duration) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx, loc: loc, approvalWindow: approvalWindow}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	query, args, err := psql.Select(reservationViewColumns...).
		From("reservations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation select", err)
	}

	view, err := r.scanView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	builder := psql.Select(reservationViewColumns...).
		From("reservations").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	return r.listQuery(ctx, builder)
}

// FindAll is the admin listing, optionally filtered by status.
func (r *ReservationReadStore) FindAll(ctx context.Context, status *string) ([]*queries.ReservationView, error) {
	builder := psql.Select(reservationViewColumns...).
		From("reservations").
		OrderBy("created_at DESC")
	if status != nil {
		builder = builder.Where(sq.Eq{"status": *status})
	}
	return r.listQuery(ctx, builder)
}

func (r *ReservationReadStore) listQuery(ctx context.Context, builder sq.SelectBuilder) ([]*queries.ReservationView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation select", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations", err)
	}
	defer rows.Close()

	var out []*queries.ReservationView
	for rows.Next() {
		view, err := r.scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ReservationReadStore) scanView(row rowScanner) (*queries.ReservationView, error) {
	var view queries.ReservationView
	if err := row.Scan(
		&view.ID, &view.SlotID, &view.UserID, &view.UserEmail, &view.UserName,
		&view.SlotStartAt, &view.SlotEndAt, &view.Status,
		&view.PaymentConfirmed, &view.PaymentConfirmedAt, &view.PaymentDeadline,
		&view.RejectReason, &view.RejectedAt, &view.DeleteReason, &view.DeletedAt,
		&view.CreatedAt,
	); err != nil {
		return nil, err
	}

	view.DisplayDate = queries.FormatDisplayDate(view.SlotStartAt, r.loc)
	view.DisplayTime = queries.FormatDisplayTime(view.SlotStartAt, view.SlotEndAt, r.loc)

	// advisory only: surfaced as a countdown, never drives a transition
	anchor := view.CreatedAt
	if view.PaymentConfirmedAt != nil {
		anchor = *view.PaymentConfirmedAt
	}
	view.ApprovalDeadline = anchor.Add(r.approvalWindow)

	return &view, nil
}
