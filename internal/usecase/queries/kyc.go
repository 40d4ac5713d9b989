package queries

import (
	"context"

	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type KycQueries interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*KycView, error)
	ListAll(ctx context.Context, status *string) ([]*KycView, error)
}

type kycQueriesImpl struct {
	readStore KycReadStore
}

func NewKycQueries(readStore KycReadStore) KycQueries {
	return &kycQueriesImpl{readStore: readStore}
}

func (k *kycQueriesImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*KycView, error) {
	view, err := k.readStore.FindByUserID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrKycNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (k *kycQueriesImpl) ListAll(ctx context.Context, status *string) ([]*KycView, error) {
	views, err := k.readStore.FindAll(ctx, status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
