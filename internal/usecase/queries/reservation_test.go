//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReservationReadStore struct {
	views map[uuid.UUID]*queries.ReservationView
}

func (f *fakeReservationReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view, ok := f.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation view", pgx.ErrNoRows)
	}
	return view, nil
}

func (f *fakeReservationReadStore) FindByUserID(_ context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	var out []*queries.ReservationView
	for _, view := range f.views {
		if view.UserID == userID {
			out = append(out, view)
		}
	}
	return out, nil
}

func (f *fakeReservationReadStore) FindAll(_ context.Context, status *string) ([]*queries.ReservationView, error) {
	var out []*queries.ReservationView
	for _, view := range f.views {
		if status == nil || view.Status == *status {
			out = append(out, view)
		}
	}
	return out, nil
}

func TestReservationGetByID(t *testing.T) {
	ownerID := uuid.New()
	view := &queries.ReservationView{
		ID:          uuid.New(),
		UserID:      ownerID,
		Status:      "payment_required",
		SlotStartAt: time.Date(2026, 3, 4, 1, 0, 0, 0, time.UTC),
	}
	store := &fakeReservationReadStore{views: map[uuid.UUID]*queries.ReservationView{view.ID: view}}
	svc := queries.NewReservationQueries(store)

	t.Run("owner sees own reservation", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), ownerID, false, view.ID)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(view, got))
	})

	t.Run("admin sees any reservation", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), uuid.New(), true, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("another customer is refused", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), uuid.New(), false, view.ID)
		require.ErrorIs(t, err, errs.ErrNotReservationOwner)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), ownerID, false, uuid.New())
		require.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestReservationListAll(t *testing.T) {
	ownerID := uuid.New()
	confirmed := &queries.ReservationView{ID: uuid.New(), UserID: ownerID, Status: "payment_confirmed"}
	cancelled := &queries.ReservationView{ID: uuid.New(), UserID: ownerID, Status: "cancelled"}
	store := &fakeReservationReadStore{views: map[uuid.UUID]*queries.ReservationView{
		confirmed.ID: confirmed,
		cancelled.ID: cancelled,
	}}
	svc := queries.NewReservationQueries(store)

	all, err := svc.ListAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	status := "payment_confirmed"
	filtered, err := svc.ListAll(context.Background(), &status)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, confirmed.ID, filtered[0].ID)
}

type fakeNotificationReadStore struct {
	feeds map[string][]*queries.NotificationView
}

func (f *fakeNotificationReadStore) FindByRecipient(_ context.Context, recipient notification.Recipient, limit int32) ([]*queries.NotificationView, error) {
	feed := f.feeds[recipient.String()]
	if int32(len(feed)) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

func (f *fakeNotificationReadStore) CountUnread(_ context.Context, recipient notification.Recipient) (int64, error) {
	var count int64
	for _, view := range f.feeds[recipient.String()] {
		if !view.Read {
			count++
		}
	}
	return count, nil
}

func TestNotificationFeed(t *testing.T) {
	userID := uuid.New()
	store := &fakeNotificationReadStore{feeds: map[string][]*queries.NotificationView{
		userID.String(): {
			{ID: uuid.New(), Recipient: userID.String(), Read: false},
			{ID: uuid.New(), Recipient: userID.String(), Read: true},
		},
		"admin": {
			{ID: uuid.New(), Recipient: "admin", Read: false},
		},
	}}
	svc := queries.NewNotificationQueries(store)

	t.Run("customer reads own feed", func(t *testing.T) {
		feed, err := svc.ListFeed(context.Background(), userID, false, 0)
		require.NoError(t, err)
		assert.Len(t, feed, 2)

		unread, err := svc.CountUnread(context.Background(), userID, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), unread)
	})

	t.Run("admin reads the shared feed", func(t *testing.T) {
		feed, err := svc.ListFeed(context.Background(), userID, true, 0)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, "admin", feed[0].Recipient)
	})

	t.Run("limit caps the page", func(t *testing.T) {
		feed, err := svc.ListFeed(context.Background(), userID, false, 1)
		require.NoError(t, err)
		assert.Len(t, feed, 1)
	})
}
