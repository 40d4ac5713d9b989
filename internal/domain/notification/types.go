package notification

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRecipient = errors.New("invalid notification recipient")

type RecipientKind string

const (
	RecipientKindUser  RecipientKind = "user"
	RecipientKindAdmin RecipientKind = "admin"
	RecipientKindGuest RecipientKind = "guest"
)

const (
	adminSentinel = "admin"
	guestSentinel = "guest"
)

// Recipient addresses a feed: a concrete user, the shared admin broadcast
// feed, or the guest feed. The sentinel strings exist only at the storage
// and wire boundary.
type Recipient struct {
	kind   RecipientKind
	userID uuid.UUID
}

func UserRecipient(id uuid.UUID) Recipient {
	return Recipient{kind: RecipientKindUser, userID: id}
}

func AdminRecipient() Recipient { return Recipient{kind: RecipientKindAdmin} }
func GuestRecipient() Recipient { return Recipient{kind: RecipientKindGuest} }

// ParseRecipient decodes the stored form: a user uuid or one of the
// sentinel values.
func ParseRecipient(s string) (Recipient, error) {
	switch s {
	case adminSentinel:
		return AdminRecipient(), nil
	case guestSentinel:
		return GuestRecipient(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return Recipient{}, ErrInvalidRecipient
	}
	return UserRecipient(id), nil
}

func (r Recipient) Kind() RecipientKind { return r.kind }
func (r Recipient) IsAdmin() bool       { return r.kind == RecipientKindAdmin }

// UserID is only meaningful when Kind is RecipientKindUser.
func (r Recipient) UserID() uuid.UUID { return r.userID }

// String is the stored/wire form.
func (r Recipient) String() string {
	switch r.kind {
	case RecipientKindAdmin:
		return adminSentinel
	case RecipientKindGuest:
		return guestSentinel
	default:
		return r.userID.String()
	}
}

type Type string

const (
	TypeReservationCreated   Type = "reservation_created"
	TypePaymentConfirmed     Type = "payment_confirmed"
	TypeReservationApproved  Type = "reservation_approved"
	TypeReservationRejected  Type = "reservation_rejected"
	TypeReservationCancelled Type = "reservation_cancelled"
	TypeReservationExpired   Type = "reservation_expired"
	TypeReservationDeleted   Type = "reservation_deleted"
	TypeKycSubmitted         Type = "kyc_submitted"
	TypeKycApproved          Type = "kyc_approved"
	TypeKycRejected          Type = "kyc_rejected"
)

func (t Type) String() string { return string(t) }
