//go:build unit

package commands_test

import (
	"context"
	"errors"
	"time"

	"brow-studio-api/internal/domain/kyc"
	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/domain/reservation"
	"brow-studio-api/internal/domain/slot"
	"brow-studio-api/internal/domain/user"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// passTxManager runs the function directly. The fakes below ignore the
// transaction handle, so nil is fine.
type passTxManager struct{}

func (passTxManager) WithinTx(_ context.Context, fn func(tx db.DBTX) error) error {
	return fn(nil)
}

func (passTxManager) WithinTxRetry(_ context.Context, fn func(tx db.DBTX) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		r.users[u.ID()] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return infra.WrapRepoErr("user insert", errors.New("duplicate email"), infra.KindDuplicateKey)
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email().Value() == email {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user by email", pgx.ErrNoRows)
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user by id", pgx.ErrNoRows)
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

type fakeSlotRepo struct {
	slots map[uuid.UUID]*slot.Slot
}

func newFakeSlotRepo(slots ...*slot.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: map[uuid.UUID]*slot.Slot{}}
	for _, s := range slots {
		r.slots[s.ID()] = s
	}
	return r
}

func (r *fakeSlotRepo) CreateBatch(_ context.Context, _ db.DBTX, slots []*slot.Slot) error {
	for _, s := range slots {
		r.slots[s.ID()] = s
	}
	return nil
}

func (r *fakeSlotRepo) CreateOccurrences(_ context.Context, _ db.DBTX, slots []*slot.Slot) (int64, error) {
	var inserted int64
	for _, occ := range slots {
		if r.hasOccurrence(occ) {
			continue
		}
		r.slots[occ.ID()] = occ
		inserted++
	}
	return inserted, nil
}

func (r *fakeSlotRepo) hasOccurrence(occ *slot.Slot) bool {
	for _, existing := range r.slots {
		if existing.TemplateID() != nil && occ.TemplateID() != nil &&
			*existing.TemplateID() == *occ.TemplateID() &&
			existing.TimeRange().Start().Equal(occ.TimeRange().Start()) {
			return true
		}
	}
	return false
}

func (r *fakeSlotRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*slot.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot by id", pgx.ErrNoRows)
	}
	return s, nil
}

func (r *fakeSlotRepo) Reserve(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	s, ok := r.slots[id]
	if !ok {
		return infra.WrapRepoErr("slot claim", errors.New("no rows updated"), infra.KindConflict)
	}
	if err := s.Reserve(); err != nil {
		return infra.WrapRepoErr("slot claim", err, infra.KindConflict)
	}
	return nil
}

func (r *fakeSlotRepo) Release(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if s, ok := r.slots[id]; ok {
		_ = s.Release()
	}
	return nil
}

func (r *fakeSlotRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.slots[id]; !ok {
		return infra.WrapRepoErr("slot delete", errors.New("no rows deleted"), infra.KindNotFound)
	}
	delete(r.slots, id)
	return nil
}

func (r *fakeSlotRepo) ListTemplates(_ context.Context, _ db.DBTX) ([]*slot.Slot, error) {
	var templates []*slot.Slot
	for _, s := range r.slots {
		if s.IsTemplate() {
			templates = append(templates, s)
		}
	}
	return templates, nil
}

type fakeReservationRepo struct {
	reservations map[uuid.UUID]*reservation.Reservation

	// afterFindExpired, when set, runs after the sweep scan returns,
	// standing in for writes that commit between the scan and the
	// per-row transaction.
	afterFindExpired func()
}

func newFakeReservationRepo(reservations ...*reservation.Reservation) *fakeReservationRepo {
	r := &fakeReservationRepo{reservations: map[uuid.UUID]*reservation.Reservation{}}
	for _, res := range reservations {
		r.reservations[res.ID()] = res
	}
	return r
}

func (r *fakeReservationRepo) Create(_ context.Context, _ db.DBTX, res *reservation.Reservation) error {
	for _, existing := range r.reservations {
		if existing.UserID() == res.UserID() && existing.IsActive() {
			return infra.WrapRepoErr("reservation insert", errors.New("duplicate active reservation"), infra.KindDuplicateKey)
		}
		if existing.SlotID() == res.SlotID() && existing.IsActive() {
			return infra.WrapRepoErr("reservation insert", errors.New("slot already reserved"), infra.KindConflict)
		}
	}
	r.reservations[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation by id", pgx.ErrNoRows)
	}
	return res, nil
}

func (r *fakeReservationRepo) Update(_ context.Context, _ db.DBTX, res *reservation.Reservation) error {
	if _, ok := r.reservations[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation update", errors.New("no rows updated"), infra.KindNotFound)
	}
	r.reservations[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) FindActiveByUser(_ context.Context, _ db.DBTX, userID uuid.UUID) (*reservation.Reservation, error) {
	for _, res := range r.reservations {
		if res.UserID() == userID && res.IsActive() {
			return res, nil
		}
	}
	return nil, infra.WrapRepoErr("active reservation", pgx.ErrNoRows)
}

// FindExpired returns detached copies, the same way a row scan rehydrates
// fresh entities: callers must not assume the snapshot tracks later writes.
func (r *fakeReservationRepo) FindExpired(_ context.Context, _ db.DBTX, now time.Time, limit int32) ([]*reservation.Reservation, error) {
	var due []*reservation.Reservation
	for _, res := range r.reservations {
		if res.Status() == reservation.StatusPaymentRequired && !now.Before(res.PaymentDeadline()) {
			due = append(due, snapshotReservation(res))
		}
		if int32(len(due)) >= limit {
			break
		}
	}
	if r.afterFindExpired != nil {
		r.afterFindExpired()
	}
	return due, nil
}

func snapshotReservation(res *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		res.ID(), res.SlotID(), res.UserID(), res.UserEmail(), res.UserName(),
		res.SlotStartAt(), res.SlotEndAt(), res.Status(),
		res.PaymentConfirmed(), res.PaymentConfirmedAt(), res.PaymentDeadline(),
		res.RejectReason(), res.RejectedAt(), res.DeleteReason(), res.DeletedAt(),
		res.CreatedAt(),
	)
}

type fakeKycRepo struct {
	records map[uuid.UUID]*kyc.Record
}

func newFakeKycRepo(records ...*kyc.Record) *fakeKycRepo {
	r := &fakeKycRepo{records: map[uuid.UUID]*kyc.Record{}}
	for _, rec := range records {
		r.records[rec.UserID()] = rec
	}
	return r
}

func (r *fakeKycRepo) Save(_ context.Context, _ db.DBTX, rec *kyc.Record) error {
	r.records[rec.UserID()] = rec
	return nil
}

func (r *fakeKycRepo) FindByUserID(_ context.Context, _ db.DBTX, userID uuid.UUID) (*kyc.Record, error) {
	rec, ok := r.records[userID]
	if !ok {
		return nil, infra.WrapRepoErr("kyc by user", pgx.ErrNoRows)
	}
	return rec, nil
}

type fakeNotificationRepo struct {
	entries map[uuid.UUID]*notification.Notification
}

func newFakeNotificationRepo(entries ...*notification.Notification) *fakeNotificationRepo {
	r := &fakeNotificationRepo{entries: map[uuid.UUID]*notification.Notification{}}
	for _, entry := range entries {
		r.entries[entry.ID()] = entry
	}
	return r
}

func (r *fakeNotificationRepo) Create(_ context.Context, _ db.DBTX, n *notification.Notification) error {
	r.entries[n.ID()] = n
	return nil
}

func (r *fakeNotificationRepo) FindRecipient(_ context.Context, id uuid.UUID) (notification.Recipient, error) {
	entry, ok := r.entries[id]
	if !ok {
		return notification.Recipient{}, infra.WrapRepoErr("notification recipient", pgx.ErrNoRows)
	}
	return entry.Recipient(), nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	entry, ok := r.entries[id]
	if !ok {
		return infra.WrapRepoErr("notification mark read", errors.New("no rows updated"), infra.KindNotFound)
	}
	entry.MarkRead()
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, recipient notification.Recipient) error {
	for _, entry := range r.entries {
		if entry.Recipient() == recipient {
			entry.MarkRead()
		}
	}
	return nil
}

func (r *fakeNotificationRepo) byType(t notification.Type) []*notification.Notification {
	var out []*notification.Notification
	for _, entry := range r.entries {
		if entry.Type() == t {
			out = append(out, entry)
		}
	}
	return out
}

type publishedEvent struct {
	Channel string
	Payload any
}

type fakePublisher struct {
	events []publishedEvent
	fail   bool
}

func (p *fakePublisher) Publish(_ context.Context, channel string, payload any) error {
	if p.fail {
		return errors.New("redis unavailable")
	}
	p.events = append(p.events, publishedEvent{Channel: channel, Payload: payload})
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
