package reservation

import "errors"

var ErrInvalidStatus = errors.New("invalid reservation status")

type Status string

const (
	// StatusPending exists only as a legacy stored value; new reservations
	// always enter at StatusPaymentRequired.
	StatusPending          Status = "pending"
	StatusPaymentRequired  Status = "payment_required"
	StatusPaymentConfirmed Status = "payment_confirmed"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusCancelled        Status = "cancelled"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaymentRequired, StatusPaymentConfirmed,
		StatusApproved, StatusRejected, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// IsActive reports whether the reservation occupies its slot and counts
// against the one-active-reservation-per-user limit.
func (s Status) IsActive() bool {
	switch s {
	case StatusPaymentRequired, StatusPaymentConfirmed, StatusApproved:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// ActiveStatuses is the set persisted queries filter on when enforcing the
// single-active-reservation invariants.
func ActiveStatuses() []Status {
	return []Status{StatusPaymentRequired, StatusPaymentConfirmed, StatusApproved}
}
