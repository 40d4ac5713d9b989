package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/domain/reservation"
	reqdto "brow-studio-api/internal/handler/dto/request"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/pkg/clock"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/pkg/metrics"
	"brow-studio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const sweepBatchSize = 100

type ReservationCommands interface {
	Create(ctx context.Context, userID uuid.UUID, req reqdto.CreateReservationRequest) (uuid.UUID, error)
	ConfirmPayment(ctx context.Context, userID, reservationID uuid.UUID) error
	Approve(ctx context.Context, reservationID uuid.UUID) error
	Reject(ctx context.Context, reservationID uuid.UUID, req reqdto.ReasonRequest) error
	Cancel(ctx context.Context, userID, reservationID uuid.UUID) error
	AdminDelete(ctx context.Context, reservationID uuid.UUID, req reqdto.ReasonRequest) error
	ExpireDue(ctx context.Context) (int, error)
}

type reservationCommandsImpl struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	userRepo        UserRepository
	kycRepo         KycRepository
	notifier        *Notifier
	tx              shared.TxManager
	clock           clock.Clock
	metrics         *metrics.Metrics
	logger          *slog.Logger
	paymentWindow   time.Duration
}

func NewReservationCommands(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	userRepo UserRepository,
	kycRepo KycRepository,
	notifier *Notifier,
	tx shared.TxManager,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
	paymentWindow time.Duration,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		userRepo:        userRepo,
		kycRepo:         kycRepo,
		notifier:        notifier,
		tx:              tx,
		clock:           clk,
		metrics:         m,
		logger:          logger,
		paymentWindow:   paymentWindow,
	}
}

// Create books a slot for the customer. The slot claim is a conditional
// update on status, so two concurrent bookings of the same slot resolve to
// exactly one winner without advisory locks.
func (r *reservationCommandsImpl) Create(ctx context.Context, userID uuid.UUID, req reqdto.CreateReservationRequest) (uuid.UUID, error) {
	record, err := r.kycRepo.FindByUserID(ctx, nil, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, errs.ErrKycNotApproved)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !record.CanBook() {
		if record.NoticeAcknowledged() {
			return uuid.Nil, errs.ErrKycNotApproved
		}
		return uuid.Nil, errs.ErrNoticeNotAccepted
	}

	bookingUser, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, ErrUserNotFound)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := r.clock.Now()
	var (
		created    *reservation.Reservation
		adminEntry *notification.Notification
	)
	err = r.tx.WithinTxRetry(ctx, func(tx db.DBTX) error {
		target, txErr := r.slotRepo.FindByID(ctx, tx, req.SlotID)
		if txErr != nil {
			return txErr
		}
		if target.IsTemplate() {
			return errs.ErrSlotNotBookable
		}
		if !target.IsBookable() {
			return errs.ErrSlotNotAvailable
		}

		if txErr := r.slotRepo.Reserve(ctx, tx, target.ID()); txErr != nil {
			return txErr
		}

		created = reservation.NewReservation(
			userID,
			bookingUser.Email(),
			bookingUser.Name(),
			reservation.SlotSnapshot{
				ID:      target.ID(),
				StartAt: target.TimeRange().Start(),
				EndAt:   target.TimeRange().End(),
			},
			now,
			r.paymentWindow,
		)
		if txErr := r.reservationRepo.Create(ctx, tx, created); txErr != nil {
			return txErr
		}

		adminEntry, txErr = r.notifier.Emit(ctx, tx,
			notification.AdminRecipient(),
			notification.TypeReservationCreated,
			"New reservation",
			fmt.Sprintf("%s booked %s", bookingUser.Name(), created.SlotStartAt().Format(time.RFC3339)),
			map[string]any{"reservation_id": created.ID().String()},
		)
		return txErr
	})
	if err != nil {
		return uuid.Nil, r.classifyCreateErr(err)
	}

	r.metrics.IncrementTransition("create")
	r.notifier.Broadcast(ctx, adminEntry)
	return created.ID(), nil
}

func (r *reservationCommandsImpl) classifyCreateErr(err error) error {
	switch {
	case errs.Is(err, errs.ErrSlotNotBookable), errs.Is(err, errs.ErrSlotNotAvailable):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrSlotNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrSlotNotAvailable)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrActiveReservationExists)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

// ConfirmPayment records the customer's claim of having paid. It is accepted
// even past the payment deadline as long as the sweeper has not expired the
// reservation yet.
func (r *reservationCommandsImpl) ConfirmPayment(ctx context.Context, userID, reservationID uuid.UUID) error {
	var adminEntry *notification.Notification
	err := r.tx.WithinTx(ctx, func(tx db.DBTX) error {
		res, txErr := r.reservationRepo.FindByID(ctx, tx, reservationID)
		if txErr != nil {
			return txErr
		}
		if res.UserID() != userID {
			return errs.ErrNotReservationOwner
		}
		if txErr := res.ConfirmPayment(r.clock.Now()); txErr != nil {
			return errs.Mark(txErr, errs.ErrInvalidTransition)
		}
		if txErr := r.reservationRepo.Update(ctx, tx, res); txErr != nil {
			return txErr
		}

		adminEntry, txErr = r.notifier.Emit(ctx, tx,
			notification.AdminRecipient(),
			notification.TypePaymentConfirmed,
			"Payment confirmed",
			fmt.Sprintf("%s confirmed payment for %s", res.UserName(), res.SlotStartAt().Format(time.RFC3339)),
			map[string]any{"reservation_id": res.ID().String()},
		)
		return txErr
	})
	if err != nil {
		return r.classifyLifecycleErr(err)
	}

	r.metrics.IncrementTransition("confirm_payment")
	r.notifier.Broadcast(ctx, adminEntry)
	return nil
}

// Approve finalizes a reservation and mails the customer.
func (r *reservationCommandsImpl) Approve(ctx context.Context, reservationID uuid.UUID) error {
	var (
		approved  *reservation.Reservation
		userEntry *notification.Notification
	)
	err := r.tx.WithinTx(ctx, func(tx db.DBTX) error {
		res, txErr := r.reservationRepo.FindByID(ctx, tx, reservationID)
		if txErr != nil {
			return txErr
		}
		if txErr := res.Approve(r.clock.Now()); txErr != nil {
			return errs.Mark(txErr, errs.ErrInvalidTransition)
		}
		if txErr := r.reservationRepo.Update(ctx, tx, res); txErr != nil {
			return txErr
		}
		approved = res

		userEntry, txErr = r.notifier.Emit(ctx, tx,
			notification.UserRecipient(res.UserID()),
			notification.TypeReservationApproved,
			"Reservation approved",
			fmt.Sprintf("Your appointment on %s is confirmed", res.SlotStartAt().Format(time.RFC3339)),
			map[string]any{"reservation_id": res.ID().String()},
		)
		return txErr
	})
	if err != nil {
		return r.classifyLifecycleErr(err)
	}

	r.metrics.IncrementTransition("approve")
	r.notifier.Broadcast(ctx, userEntry)
	r.notifier.SendMail(ctx,
		approved.UserEmail().Value(),
		"Your reservation is approved",
		fmt.Sprintf("Hi %s, your appointment on %s has been approved.", approved.UserName(), approved.SlotStartAt().Format(time.RFC3339)),
	)
	return nil
}

// Reject turns down a payment_confirmed reservation with a mandatory reason
// and frees the slot for rebooking.
func (r *reservationCommandsImpl) Reject(ctx context.Context, reservationID uuid.UUID, req reqdto.ReasonRequest) error {
	reason, err := reservation.NewReason(req.Reason)
	if err != nil {
		return errs.Mark(err, errs.ErrReasonRequired)
	}

	var (
		rejected  *reservation.Reservation
		userEntry *notification.Notification
	)
	err = r.tx.WithinTx(ctx, func(tx db.DBTX) error {
		res, txErr := r.reservationRepo.FindByID(ctx, tx, reservationID)
		if txErr != nil {
			return txErr
		}
		if txErr := res.Reject(reason, r.clock.Now()); txErr != nil {
			return errs.Mark(txErr, errs.ErrInvalidTransition)
		}
		if txErr := r.reservationRepo.Update(ctx, tx, res); txErr != nil {
			return txErr
		}
		if txErr := r.slotRepo.Release(ctx, tx, res.SlotID()); txErr != nil {
			return txErr
		}
		rejected = res

		userEntry, txErr = r.notifier.Emit(ctx, tx,
			notification.UserRecipient(res.UserID()),
			notification.TypeReservationRejected,
			"Reservation rejected",
			reason.String(),
			map[string]any{"reservation_id": res.ID().String()},
		)
		return txErr
	})
	if err != nil {
		return r.classifyLifecycleErr(err)
	}

	r.metrics.IncrementTransition("reject")
	r.notifier.Broadcast(ctx, userEntry)
	r.notifier.SendMail(ctx,
		rejected.UserEmail().Value(),
		"Your reservation was rejected",
		fmt.Sprintf("Hi %s, your reservation was rejected: %s", rejected.UserName(), reason.String()),
	)
	return nil
}

// Cancel is the customer-initiated exit. The slot goes back to available in
// the same transaction.
func (r *reservationCommandsImpl) Cancel(ctx context.Context, userID, reservationID uuid.UUID) error {
	var adminEntry *notification.Notification
	err := r.tx.WithinTx(ctx, func(tx db.DBTX) error {
		res, txErr := r.reservationRepo.FindByID(ctx, tx, reservationID)
		if txErr != nil {
			return txErr
		}
		if res.UserID() != userID {
			return errs.ErrNotReservationOwner
		}
		if txErr := res.Cancel(); txErr != nil {
			return errs.Mark(txErr, errs.ErrInvalidTransition)
		}
		if txErr := r.reservationRepo.Update(ctx, tx, res); txErr != nil {
			return txErr
		}
		if txErr := r.slotRepo.Release(ctx, tx, res.SlotID()); txErr != nil {
			return txErr
		}

		adminEntry, txErr = r.notifier.Emit(ctx, tx,
			notification.AdminRecipient(),
			notification.TypeReservationCancelled,
			"Reservation cancelled",
			fmt.Sprintf("%s cancelled the appointment on %s", res.UserName(), res.SlotStartAt().Format(time.RFC3339)),
			map[string]any{"reservation_id": res.ID().String()},
		)
		return txErr
	})
	if err != nil {
		return r.classifyLifecycleErr(err)
	}

	r.metrics.IncrementTransition("cancel")
	r.notifier.Broadcast(ctx, adminEntry)
	return nil
}

// AdminDelete force-cancels from any state with a mandatory reason, freeing
// the slot and telling the customer why.
func (r *reservationCommandsImpl) AdminDelete(ctx context.Context, reservationID uuid.UUID, req reqdto.ReasonRequest) error {
	reason, err := reservation.NewReason(req.Reason)
	if err != nil {
		return errs.Mark(err, errs.ErrReasonRequired)
	}

	var userEntry, adminEntry *notification.Notification
	err = r.tx.WithinTx(ctx, func(tx db.DBTX) error {
		res, txErr := r.reservationRepo.FindByID(ctx, tx, reservationID)
		if txErr != nil {
			return txErr
		}
		wasActive := res.IsActive()
		res.AdminDelete(reason, r.clock.Now())
		if txErr := r.reservationRepo.Update(ctx, tx, res); txErr != nil {
			return txErr
		}
		if wasActive {
			if txErr := r.slotRepo.Release(ctx, tx, res.SlotID()); txErr != nil {
				return txErr
			}
		}

		userEntry, txErr = r.notifier.Emit(ctx, tx,
			notification.UserRecipient(res.UserID()),
			notification.TypeReservationDeleted,
			"Reservation removed",
			reason.String(),
			map[string]any{"reservation_id": res.ID().String()},
		)
		if txErr != nil {
			return txErr
		}
		adminEntry, txErr = r.notifier.Emit(ctx, tx,
			notification.AdminRecipient(),
			notification.TypeReservationDeleted,
			"Reservation removed",
			reason.String(),
			map[string]any{"reservation_id": res.ID().String()},
		)
		return txErr
	})
	if err != nil {
		return r.classifyLifecycleErr(err)
	}

	r.metrics.IncrementTransition("admin_delete")
	r.notifier.Broadcast(ctx, userEntry, adminEntry)
	return nil
}

// ExpireDue sweeps payment_required reservations whose deadline has passed.
// Each expiry runs in its own transaction so one poisoned row cannot stall
// the whole batch.
func (r *reservationCommandsImpl) ExpireDue(ctx context.Context) (int, error) {
	now := r.clock.Now()
	due, err := r.reservationRepo.FindExpired(ctx, nil, now, sweepBatchSize)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	swept := 0
	var entries []*notification.Notification
	for _, stale := range due {
		id := stale.ID()
		var userEntry *notification.Notification
		overtaken := false
		err := r.tx.WithinTx(ctx, func(tx db.DBTX) error {
			// The scan above ran outside this transaction, so the row may
			// have moved on since. Reload it and let a payment confirmed
			// in the meantime win over the stale snapshot.
			res, txErr := r.reservationRepo.FindByID(ctx, tx, id)
			if txErr != nil {
				return txErr
			}
			if txErr := res.Expire(now); txErr != nil {
				overtaken = true
				return nil
			}
			if txErr := r.reservationRepo.Update(ctx, tx, res); txErr != nil {
				return txErr
			}
			if txErr := r.slotRepo.Release(ctx, tx, res.SlotID()); txErr != nil {
				return txErr
			}

			var emitErr error
			userEntry, emitErr = r.notifier.Emit(ctx, tx,
				notification.UserRecipient(res.UserID()),
				notification.TypeReservationExpired,
				"Reservation expired",
				"Your reservation was cancelled because the payment window elapsed",
				map[string]any{"reservation_id": res.ID().String()},
			)
			return emitErr
		})
		if err != nil {
			r.logger.Warn("failed to expire reservation",
				slog.String("reservation_id", id.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if overtaken {
			continue
		}
		swept++
		entries = append(entries, userEntry)
	}

	if swept > 0 {
		r.metrics.AddSwept(swept)
		r.logger.Info("expired overdue reservations", slog.Int("count", swept))
	}
	r.notifier.Broadcast(ctx, entries...)
	return swept, nil
}

func (r *reservationCommandsImpl) classifyLifecycleErr(err error) error {
	switch {
	case errs.Is(err, errs.ErrNotReservationOwner),
		errs.Is(err, errs.ErrInvalidTransition):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrReservationNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
