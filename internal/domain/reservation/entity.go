package reservation

import (
	"errors"
	"time"

	"brow-studio-api/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition   = errors.New("transition not allowed from current status")
	ErrDeadlineNotReached  = errors.New("payment deadline has not passed yet")
	ErrDeadlineNotExceeded = errors.New("direct approval requires an expired payment deadline")
)

// SlotSnapshot carries the slot attributes denormalized onto a reservation
// at creation time, so the booking record survives a slot hard delete.
type SlotSnapshot struct {
	ID      uuid.UUID
	StartAt time.Time
	EndAt   time.Time
}

type Reservation struct {
	id                 uuid.UUID
	slotID             uuid.UUID
	userID             uuid.UUID
	userEmail          user.Email
	userName           string
	slotStartAt        time.Time
	slotEndAt          time.Time
	status             Status
	paymentConfirmed   bool
	paymentConfirmedAt *time.Time
	paymentDeadline    time.Time
	rejectReason       *Reason
	rejectedAt         *time.Time
	deleteReason       *Reason
	deletedAt          *time.Time
	createdAt          time.Time
}

// NewReservation enters the lifecycle at payment_required with a payment
// deadline of exactly now plus the configured window.
func NewReservation(
	userID uuid.UUID,
	email user.Email,
	name string,
	slot SlotSnapshot,
	now time.Time,
	paymentWindow time.Duration,
) *Reservation {
	return &Reservation{
		id:              uuid.New(),
		slotID:          slot.ID,
		userID:          userID,
		userEmail:       email,
		userName:        name,
		slotStartAt:     slot.StartAt,
		slotEndAt:       slot.EndAt,
		status:          StatusPaymentRequired,
		paymentDeadline: now.Add(paymentWindow),
		createdAt:       now,
	}
}

func ReconstructReservation(
	id, slotID, userID uuid.UUID,
	userEmail user.Email,
	userName string,
	slotStartAt, slotEndAt time.Time,
	status Status,
	paymentConfirmed bool,
	paymentConfirmedAt *time.Time,
	paymentDeadline time.Time,
	rejectReason *Reason,
	rejectedAt *time.Time,
	deleteReason *Reason,
	deletedAt *time.Time,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:                 id,
		slotID:             slotID,
		userID:             userID,
		userEmail:          userEmail,
		userName:           userName,
		slotStartAt:        slotStartAt,
		slotEndAt:          slotEndAt,
		status:             status,
		paymentConfirmed:   paymentConfirmed,
		paymentConfirmedAt: paymentConfirmedAt,
		paymentDeadline:    paymentDeadline,
		rejectReason:       rejectReason,
		rejectedAt:         rejectedAt,
		deleteReason:       deleteReason,
		deletedAt:          deletedAt,
		createdAt:          createdAt,
	}
}

// ConfirmPayment records the customer's payment assertion. The deadline is
// deliberately not checked here; the sweeper owns expiry.
func (r *Reservation) ConfirmPayment(now time.Time) error {
	if r.status != StatusPaymentRequired {
		return ErrInvalidTransition
	}
	r.status = StatusPaymentConfirmed
	r.paymentConfirmed = true
	at := now
	r.paymentConfirmedAt = &at
	return nil
}

// Approve moves a payment_confirmed reservation to approved. A
// payment_required reservation may also be approved directly, but only once
// its payment deadline has passed; the operator is vouching for a payment
// the customer never confirmed in the portal.
func (r *Reservation) Approve(now time.Time) error {
	switch r.status {
	case StatusPaymentConfirmed:
	case StatusPaymentRequired:
		if now.Before(r.paymentDeadline) {
			return ErrDeadlineNotExceeded
		}
	default:
		return ErrInvalidTransition
	}
	r.status = StatusApproved
	return nil
}

func (r *Reservation) Reject(reason Reason, now time.Time) error {
	if r.status != StatusPaymentConfirmed {
		return ErrInvalidTransition
	}
	r.status = StatusRejected
	r.rejectReason = &reason
	at := now
	r.rejectedAt = &at
	return nil
}

// Cancel is the customer-initiated exit, allowed from any active state.
func (r *Reservation) Cancel() error {
	if !r.status.IsActive() {
		return ErrInvalidTransition
	}
	r.status = StatusCancelled
	return nil
}

// AdminDelete force-cancels from any state, approved included, recording
// the operator's reason.
func (r *Reservation) AdminDelete(reason Reason, now time.Time) {
	r.status = StatusCancelled
	r.deleteReason = &reason
	at := now
	r.deletedAt = &at
}

// Expire cancels an unpaid reservation whose payment window has elapsed.
// It never fires before the deadline.
func (r *Reservation) Expire(now time.Time) error {
	if r.status != StatusPaymentRequired {
		return ErrInvalidTransition
	}
	if now.Before(r.paymentDeadline) {
		return ErrDeadlineNotReached
	}
	r.status = StatusCancelled
	return nil
}

// ApprovalDeadline is the advisory instant by which an operator should have
// decided. It never drives a transition.
func (r *Reservation) ApprovalDeadline(approvalWindow time.Duration) time.Time {
	base := r.createdAt
	if r.paymentConfirmedAt != nil {
		base = *r.paymentConfirmedAt
	}
	return base.Add(approvalWindow)
}

func (r *Reservation) IsActive() bool { return r.status.IsActive() }

func (r *Reservation) ID() uuid.UUID                  { return r.id }
func (r *Reservation) SlotID() uuid.UUID              { return r.slotID }
func (r *Reservation) UserID() uuid.UUID              { return r.userID }
func (r *Reservation) UserEmail() user.Email          { return r.userEmail }
func (r *Reservation) UserName() string               { return r.userName }
func (r *Reservation) SlotStartAt() time.Time         { return r.slotStartAt }
func (r *Reservation) SlotEndAt() time.Time           { return r.slotEndAt }
func (r *Reservation) Status() Status                 { return r.status }
func (r *Reservation) PaymentConfirmed() bool         { return r.paymentConfirmed }
func (r *Reservation) PaymentConfirmedAt() *time.Time { return r.paymentConfirmedAt }
func (r *Reservation) PaymentDeadline() time.Time     { return r.paymentDeadline }
func (r *Reservation) RejectReason() *Reason          { return r.rejectReason }
func (r *Reservation) RejectedAt() *time.Time         { return r.rejectedAt }
func (r *Reservation) DeleteReason() *Reason          { return r.deleteReason }
func (r *Reservation) DeletedAt() *time.Time          { return r.deletedAt }
func (r *Reservation) CreatedAt() time.Time           { return r.createdAt }
