package repository

import (
	"context"
	"errors"
	"time"

	"brow-studio-api/internal/domain/reservation"
	"brow-studio-api/internal/domain/user"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var reservationColumns = []string{
	"id", "slot_id", "user_id", "user_email", "user_name",
	"slot_start_at", "slot_end_at", "status",
	"payment_confirmed", "payment_confirmed_at", "payment_deadline",
	"reject_reason", "rejected_at", "delete_reason", "deleted_at",
	"created_at",
}

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) dbtx(tx db.DBTX) db.DBTX {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create relies on the partial unique indexes over active reservations:
// a second active booking by the same user surfaces as DUPLICATE_KEY, a
// lost race for the same slot as CONFLICT.
func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	query, args, err := psql.Insert("reservations").
		Columns(
			"id", "slot_id", "user_id", "user_email", "user_name",
			"slot_start_at", "slot_end_at", "status",
			"payment_confirmed", "payment_deadline",
		).
		Values(
			res.ID(), res.SlotID(), res.UserID(), res.UserEmail().Value(), res.UserName(),
			res.SlotStartAt(), res.SlotEndAt(), res.Status(),
			res.PaymentConfirmed(), res.PaymentDeadline(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_reservations_active_slot" {
			return infra.WrapRepoErr("slot already has an active reservation", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).
		From("reservations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation select", err)
	}

	res, err := scanReservation(r.dbtx(dbtx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

// Update persists the mutable lifecycle fields after a transition.
func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	query, args, err := psql.Update("reservations").
		Set("status", res.Status()).
		Set("payment_confirmed", res.PaymentConfirmed()).
		Set("payment_confirmed_at", res.PaymentConfirmedAt()).
		Set("reject_reason", reasonText(res.RejectReason())).
		Set("rejected_at", res.RejectedAt()).
		Set("delete_reason", reasonText(res.DeleteReason())).
		Set("deleted_at", res.DeletedAt()).
		Where(sq.Eq{"id": res.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) FindActiveByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*reservation.Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).
		From("reservations").
		Where(sq.Eq{"user_id": userID, "status": reservation.ActiveStatuses()}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build active reservation select", err)
	}

	res, err := scanReservation(r.dbtx(dbtx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active reservation", err)
	}
	return res, nil
}

// FindExpired returns unpaid reservations whose payment deadline has passed,
// oldest first. The sweeper processes them in batches.
func (r *ReservationRepository) FindExpired(ctx context.Context, dbtx db.DBTX, now time.Time, limit int32) ([]*reservation.Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).
		From("reservations").
		Where(sq.Eq{"status": reservation.StatusPaymentRequired}).
		Where(sq.LtOrEq{"payment_deadline": now}).
		OrderBy("payment_deadline").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build expired reservation select", err)
	}

	rows, err := r.dbtx(dbtx).Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expired reservations", err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired reservation", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired reservations", err)
	}
	return out, nil
}

func reasonText(r *reservation.Reason) *string {
	if r == nil {
		return nil
	}
	s := r.String()
	return &s
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id, slotID, userID             uuid.UUID
		email, name, status           string
		slotStartAt, slotEndAt        time.Time
		paymentConfirmed              bool
		paymentConfirmedAt            *time.Time
		paymentDeadline               time.Time
		rejectReasonStr, deleteReason *string
		rejectedAt, deletedAt         *time.Time
		createdAt                     time.Time
	)
	if err := row.Scan(
		&id, &slotID, &userID, &email, &name,
		&slotStartAt, &slotEndAt, &status,
		&paymentConfirmed, &paymentConfirmedAt, &paymentDeadline,
		&rejectReasonStr, &rejectedAt, &deleteReason, &deletedAt,
		&createdAt,
	); err != nil {
		return nil, err
	}

	userEmail, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}

	toReason := func(s *string) (*reservation.Reason, error) {
		if s == nil {
			return nil, nil
		}
		reason, err := reservation.NewReason(*s)
		if err != nil {
			return nil, err
		}
		return &reason, nil
	}
	rejectReason, err := toReason(rejectReasonStr)
	if err != nil {
		return nil, err
	}
	delReason, err := toReason(deleteReason)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, slotID, userID, userEmail, name,
		slotStartAt, slotEndAt, reservation.Status(status),
		paymentConfirmed, paymentConfirmedAt, paymentDeadline,
		rejectReason, rejectedAt, delReason, deletedAt,
		createdAt,
	), nil
}
