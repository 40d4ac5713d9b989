//go:build e2e

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"brow-studio-api/internal/domain/reservation"
	"brow-studio-api/internal/domain/slot"
	"brow-studio-api/internal/domain/user"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/repository"
	"brow-studio-api/tests/common/dbtest"
	"brow-studio-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RepositorySuite runs the repositories against the migrated schema, so the
// check constraints and partial unique indexes are exercised for real instead
// of being re-stated by fakes.
type RepositorySuite struct {
	e2e.SharedSuite
}

func TestRepositorySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) adminID() uuid.UUID {
	return dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", "admin")
}

func (s *RepositorySuite) customerID(n int) uuid.UUID {
	return dbtest.CreateTestUser(s.T(), s.DB, fmt.Sprintf("customer%d@example.com", n), "customer")
}

func (s *RepositorySuite) customSlot(t *testing.T, createdBy uuid.UUID) *slot.Slot {
	now := time.Now()
	slots, err := slot.NewCustomSlots(createdBy, now.Add(24*time.Hour), time.Hour, 1, now)
	require.NoError(t, err)

	repo := repository.NewSlotRepository(s.DB)
	require.NoError(t, repo.CreateBatch(context.Background(), s.DB, slots))
	return slots[0]
}

func (s *RepositorySuite) newReservation(t *testing.T, userID uuid.UUID, target *slot.Slot) *reservation.Reservation {
	email, err := user.NewEmail(fmt.Sprintf("owner-%s@example.com", userID))
	require.NoError(t, err)

	return reservation.NewReservation(userID, email, "Test User", reservation.SlotSnapshot{
		ID:      target.ID(),
		StartAt: target.TimeRange().Start(),
		EndAt:   target.TimeRange().End(),
	}, time.Now(), 30*time.Minute)
}

func (s *RepositorySuite) TestSlotTemplates() {
	ctx := context.Background()

	s.Run("recurring template survives a round trip", func() {
		t := s.T()
		repo := repository.NewSlotRepository(s.DB)

		rec, err := slot.NewRecurrence([]int{1, 3}, "10:00", "12:00", 60)
		require.NoError(t, err)
		tpl := slot.NewRecurringTemplate(s.adminID(), rec)

		require.NoError(t, repo.CreateBatch(ctx, s.DB, []*slot.Slot{tpl}))

		templates, err := repo.ListTemplates(ctx, nil)
		require.NoError(t, err)
		require.Len(t, templates, 1)
		assert.Equal(t, tpl.ID(), templates[0].ID())
		assert.Equal(t, slot.KindRecurring, templates[0].Kind())
		require.NotNil(t, templates[0].Recurrence())
		assert.Equal(t, []int{1, 3}, templates[0].Recurrence().DaysOfWeek())
		assert.Equal(t, "10:00", templates[0].Recurrence().StartTime())
		assert.Equal(t, 60, templates[0].Recurrence().IntervalMinutes())
	})

	s.Run("materialization dedups on template and start instant", func() {
		t := s.T()
		repo := repository.NewSlotRepository(s.DB)

		rec, err := slot.NewRecurrence([]int{2}, "09:00", "11:00", 60)
		require.NoError(t, err)
		tpl := slot.NewRecurringTemplate(s.adminID(), rec)
		require.NoError(t, repo.CreateBatch(ctx, s.DB, []*slot.Slot{tpl}))

		start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
		tr, err := slot.NewTimeRange(start, start.Add(time.Hour))
		require.NoError(t, err)

		first, err := tpl.Materialize(tr)
		require.NoError(t, err)
		inserted, err := repo.CreateOccurrences(ctx, s.DB, []*slot.Slot{first})
		require.NoError(t, err)
		assert.Equal(t, int64(1), inserted)

		again, err := tpl.Materialize(tr)
		require.NoError(t, err)
		inserted, err = repo.CreateOccurrences(ctx, s.DB, []*slot.Slot{again})
		require.NoError(t, err)
		assert.Zero(t, inserted)
	})
}

func (s *RepositorySuite) TestReservationConstraints() {
	ctx := context.Background()

	s.Run("second booking for the same slot loses the race", func() {
		t := s.T()
		repo := repository.NewReservationRepository(s.DB)

		target := s.customSlot(t, s.adminID())
		first := s.newReservation(t, s.customerID(1), target)
		require.NoError(t, repo.Create(ctx, s.DB, first))

		second := s.newReservation(t, s.customerID(2), target)
		err := repo.Create(ctx, s.DB, second)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	s.Run("second active reservation by the same user is refused", func() {
		t := s.T()
		repo := repository.NewReservationRepository(s.DB)

		admin := s.adminID()
		customer := s.customerID(1)
		require.NoError(t, repo.Create(ctx, s.DB, s.newReservation(t, customer, s.customSlot(t, admin))))

		err := repo.Create(ctx, s.DB, s.newReservation(t, customer, s.customSlot(t, admin)))
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	s.Run("slot claim admits exactly one winner", func() {
		t := s.T()
		repo := repository.NewSlotRepository(s.DB)

		target := s.customSlot(t, s.adminID())
		require.NoError(t, repo.Reserve(ctx, s.DB, target.ID()))

		err := repo.Reserve(ctx, s.DB, target.ID())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	s.Run("templates are never claimable", func() {
		t := s.T()
		repo := repository.NewSlotRepository(s.DB)

		rec, err := slot.NewRecurrence([]int{5}, "14:00", "16:00", 60)
		require.NoError(t, err)
		tpl := slot.NewRecurringTemplate(s.adminID(), rec)
		require.NoError(t, repo.CreateBatch(ctx, s.DB, []*slot.Slot{tpl}))

		err = repo.Reserve(ctx, s.DB, tpl.ID())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})
}
