package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Slot errors
	ErrSlotNotFound       = errors.New("slot not found")
	ErrSlotNotAvailable   = errors.New("slot not available")
	ErrSlotNotBookable    = errors.New("recurring template is not bookable")
	ErrInvalidSlotRequest = errors.New("invalid slot request")

	// Reservation errors
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrActiveReservationExists = errors.New("active reservation already exists")
	ErrInvalidTransition       = errors.New("invalid reservation status transition")
	ErrDeadlineNotReached      = errors.New("payment deadline not reached")
	ErrReasonRequired          = errors.New("non-empty reason required")
	ErrNotReservationOwner     = errors.New("reservation belongs to another user")

	// KYC errors
	ErrKycNotFound       = errors.New("kyc record not found")
	ErrKycNotApproved    = errors.New("kyc record is not approved")
	ErrNoticeNotAccepted = errors.New("booking notice has not been acknowledged")
	ErrNoteRequired      = errors.New("non-empty procedure note required")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("notification belongs to another recipient")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
