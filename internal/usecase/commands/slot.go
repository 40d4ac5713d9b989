package commands

import (
	"context"
	"log/slog"
	"time"

	"brow-studio-api/internal/domain/slot"
	reqdto "brow-studio-api/internal/handler/dto/request"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/pkg/clock"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/pkg/metrics"
	"brow-studio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotCommands interface {
	CreateCustomSlots(ctx context.Context, adminID uuid.UUID, req reqdto.CreateSlotsRequest) ([]uuid.UUID, error)
	CreateTemplate(ctx context.Context, adminID uuid.UUID, req reqdto.CreateTemplateRequest) (uuid.UUID, error)
	DeleteSlot(ctx context.Context, id uuid.UUID) error
	MaterializeTemplates(ctx context.Context) (int64, error)
}

type slotCommandsImpl struct {
	slotRepo           SlotRepository
	tx                 shared.TxManager
	clock              clock.Clock
	metrics            *metrics.Metrics
	logger             *slog.Logger
	materializeHorizon time.Duration
	displayLocation    *time.Location
}

func NewSlotCommands(
	slotRepo SlotRepository,
	tx shared.TxManager,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
	materializeHorizon time.Duration,
	displayLocation *time.Location,
) SlotCommands {
	return &slotCommandsImpl{
		slotRepo:           slotRepo,
		tx:                 tx,
		clock:              clk,
		metrics:            m,
		logger:             logger,
		materializeHorizon: materializeHorizon,
		displayLocation:    displayLocation,
	}
}

func (s *slotCommandsImpl) CreateCustomSlots(ctx context.Context, adminID uuid.UUID, req reqdto.CreateSlotsRequest) ([]uuid.UUID, error) {
	slots, err := slot.NewCustomSlots(adminID, req.StartAt, req.Duration(), req.Count, s.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlotRequest)
	}

	err = s.tx.WithinTx(ctx, func(tx db.DBTX) error {
		return s.slotRepo.CreateBatch(ctx, tx, slots)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	ids := make([]uuid.UUID, len(slots))
	for i, sl := range slots {
		ids[i] = sl.ID()
	}
	return ids, nil
}

func (s *slotCommandsImpl) CreateTemplate(ctx context.Context, adminID uuid.UUID, req reqdto.CreateTemplateRequest) (uuid.UUID, error) {
	recurrence, err := req.ToDomain()
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidSlotRequest)
	}

	template := slot.NewRecurringTemplate(adminID, recurrence)
	err = s.tx.WithinTx(ctx, func(tx db.DBTX) error {
		return s.slotRepo.CreateBatch(ctx, tx, []*slot.Slot{template})
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return template.ID(), nil
}

// DeleteSlot is an unconditional hard delete. A reservation pointing at the
// slot keeps its denormalized snapshot and is left untouched.
func (s *slotCommandsImpl) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(tx db.DBTX) error {
		return s.slotRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrSlotNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// MaterializeTemplates expands every recurring template into concrete
// occurrences on the rolling horizon. Occurrences already present are
// skipped by the conflict-free insert, so the operation is idempotent and
// safe to run from both the worker and the admin endpoint.
func (s *slotCommandsImpl) MaterializeTemplates(ctx context.Context) (int64, error) {
	now := s.clock.Now()
	horizonEnd := now.Add(s.materializeHorizon)

	templates, err := s.slotRepo.ListTemplates(ctx, nil)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var total int64
	for _, template := range templates {
		recurrence := template.Recurrence()
		if recurrence == nil {
			continue
		}

		var occurrences []*slot.Slot
		for _, window := range recurrence.OccurrencesBetween(now, horizonEnd, s.displayLocation) {
			occ, err := template.Materialize(window)
			if err != nil {
				return total, errs.Mark(err, errs.ErrDomainValidation)
			}
			occurrences = append(occurrences, occ)
		}
		if len(occurrences) == 0 {
			continue
		}

		var inserted int64
		err = s.tx.WithinTx(ctx, func(tx db.DBTX) error {
			var txErr error
			inserted, txErr = s.slotRepo.CreateOccurrences(ctx, tx, occurrences)
			return txErr
		})
		if err != nil {
			return total, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		total += inserted
	}

	if total > 0 {
		s.metrics.AddMaterialized(int(total))
		s.logger.Info("materialized template occurrences", slog.Int64("count", total))
	}
	return total, nil
}
