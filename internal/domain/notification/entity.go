package notification

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyTitle = errors.New("notification title must not be empty")

// Notification is an append-only feed entry; only the read flag ever changes
// after insertion.
type Notification struct {
	id        uuid.UUID
	recipient Recipient
	notifType Type
	title     string
	message   string
	read      bool
	data      map[string]any
	createdAt time.Time
}

func NewNotification(recipient Recipient, notifType Type, title, message string, data map[string]any) (*Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	return &Notification{
		id:        uuid.New(),
		recipient: recipient,
		notifType: notifType,
		title:     title,
		message:   message,
		data:      data,
	}, nil
}

func ReconstructNotification(
	id uuid.UUID,
	recipient Recipient,
	notifType Type,
	title, message string,
	read bool,
	data map[string]any,
	createdAt time.Time,
) *Notification {
	return &Notification{
		id:        id,
		recipient: recipient,
		notifType: notifType,
		title:     title,
		message:   message,
		read:      read,
		data:      data,
		createdAt: createdAt,
	}
}

func (n *Notification) MarkRead() { n.read = true }

// VisibleTo reports whether a reader may act on this entry: the addressed
// user, or any admin for the admin feed.
func (n *Notification) VisibleTo(userID uuid.UUID, isAdmin bool) bool {
	switch n.recipient.Kind() {
	case RecipientKindAdmin:
		return isAdmin
	case RecipientKindUser:
		return n.recipient.UserID() == userID
	default:
		return false
	}
}

func (n *Notification) ID() uuid.UUID        { return n.id }
func (n *Notification) Recipient() Recipient { return n.recipient }
func (n *Notification) Type() Type           { return n.notifType }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) Read() bool           { return n.read }
func (n *Notification) Data() map[string]any { return n.data }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
