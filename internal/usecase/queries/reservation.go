package queries

import (
	"context"

	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, viewerID uuid.UUID, isAdmin bool, id uuid.UUID) (*ReservationView, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
	ListAll(ctx context.Context, status *string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

// GetByID returns one reservation. Customers only see their own; admins
// see everything.
func (r *reservationQueriesImpl) GetByID(ctx context.Context, viewerID uuid.UUID, isAdmin bool, id uuid.UUID) (*ReservationView, error) {
	view, err := r.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !isAdmin && view.UserID != viewerID {
		return nil, errs.ErrNotReservationOwner
	}
	return view, nil
}

func (r *reservationQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error) {
	views, err := r.readStore.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (r *reservationQueriesImpl) ListAll(ctx context.Context, status *string) ([]*ReservationView, error) {
	views, err := r.readStore.FindAll(ctx, status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
