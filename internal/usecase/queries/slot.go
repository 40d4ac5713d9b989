package queries

import (
	"context"
	"time"

	"brow-studio-api/internal/pkg/errs"
)

type SlotQueries interface {
	ListAvailable(ctx context.Context, from, to time.Time) ([]*SlotView, error)
	ListAll(ctx context.Context) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	readStore SlotReadStore
}

func NewSlotQueries(readStore SlotReadStore) SlotQueries {
	return &slotQueriesImpl{readStore: readStore}
}

// ListAvailable is the customer-facing catalogue: bookable custom slots
// whose start falls in the window. Templates never appear here.
func (s *slotQueriesImpl) ListAvailable(ctx context.Context, from, to time.Time) ([]*SlotView, error) {
	views, err := s.readStore.FindAvailable(ctx, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (s *slotQueriesImpl) ListAll(ctx context.Context) ([]*SlotView, error) {
	views, err := s.readStore.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
