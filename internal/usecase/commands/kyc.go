package commands

import (
	"context"
	"fmt"
	"log/slog"

	"brow-studio-api/internal/domain/kyc"
	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/domain/user"
	reqdto "brow-studio-api/internal/handler/dto/request"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/pkg/clock"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/pkg/metrics"
	"brow-studio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type KycCommands interface {
	Submit(ctx context.Context, userID uuid.UUID, req reqdto.SubmitKycRequest) error
	Approve(ctx context.Context, userID uuid.UUID) error
	Reject(ctx context.Context, userID uuid.UUID, req reqdto.ReasonRequest) error
	AcknowledgeNotice(ctx context.Context, userID uuid.UUID) error
	StartProcedure(ctx context.Context, userID uuid.UUID) error
	CompleteProcedure(ctx context.Context, userID uuid.UUID, req reqdto.CompleteProcedureRequest) error
}

type kycCommandsImpl struct {
	kycRepo  KycRepository
	userRepo UserRepository
	notifier *Notifier
	tx       shared.TxManager
	clock    clock.Clock
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewKycCommands(
	kycRepo KycRepository,
	userRepo UserRepository,
	notifier *Notifier,
	tx shared.TxManager,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) KycCommands {
	return &kycCommandsImpl{
		kycRepo:  kycRepo,
		userRepo: userRepo,
		notifier: notifier,
		tx:       tx,
		clock:    clk,
		metrics:  m,
		logger:   logger,
	}
}

// Submit files a new intake record or resubmits after rejection. Upserting
// on user_id keeps the record one-per-customer; the notice acknowledgement
// and procedure trail survive a resubmission.
func (k *kycCommandsImpl) Submit(ctx context.Context, userID uuid.UUID, req reqdto.SubmitKycRequest) error {
	profile, err := req.ToProfile()
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}
	photos, err := req.ToPhotos()
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	submitter, err := k.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrUserNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := k.clock.Now()
	var adminEntry *notification.Notification
	err = k.tx.WithinTx(ctx, func(tx db.DBTX) error {
		record, txErr := k.kycRepo.FindByUserID(ctx, tx, userID)
		switch {
		case txErr == nil:
			if txErr := record.Resubmit(profile, photos, now); txErr != nil {
				return errs.Mark(txErr, errs.ErrDomainValidation)
			}
		case infra.IsKind(txErr, infra.KindNotFound):
			record, txErr = kyc.NewRecord(userID, profile, photos, now)
			if txErr != nil {
				return errs.Mark(txErr, errs.ErrDomainValidation)
			}
		default:
			return txErr
		}

		if txErr := k.kycRepo.Save(ctx, tx, record); txErr != nil {
			return txErr
		}

		adminEntry, txErr = k.notifier.Emit(ctx, tx,
			notification.AdminRecipient(),
			notification.TypeKycSubmitted,
			"New intake submission",
			fmt.Sprintf("%s submitted an intake record for review", submitter.Name()),
			map[string]any{"user_id": userID.String()},
		)
		return txErr
	})
	if err != nil {
		if errs.Is(err, errs.ErrDomainValidation) {
			return err
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	k.notifier.Broadcast(ctx, adminEntry)
	return nil
}

func (k *kycCommandsImpl) Approve(ctx context.Context, userID uuid.UUID) error {
	reviewed, err := k.review(ctx, userID, func(record *kyc.Record) error {
		return record.Approve(k.clock.Now())
	}, notification.TypeKycApproved, "Intake approved",
		"Your intake record was approved. Acknowledge the booking notice to start booking.")
	if err != nil {
		return err
	}

	k.notifier.SendMail(ctx,
		reviewed.Value(),
		"Your intake record is approved",
		"Your intake record has been approved. Please read and acknowledge the booking notice in the portal.",
	)
	return nil
}

func (k *kycCommandsImpl) Reject(ctx context.Context, userID uuid.UUID, req reqdto.ReasonRequest) error {
	reviewed, err := k.review(ctx, userID, func(record *kyc.Record) error {
		return record.Reject(req.Reason, k.clock.Now())
	}, notification.TypeKycRejected, "Intake rejected", req.Reason)
	if err != nil {
		return err
	}

	k.notifier.SendMail(ctx,
		reviewed.Value(),
		"Your intake record was rejected",
		fmt.Sprintf("Your intake record was rejected: %s. You may correct and resubmit it.", req.Reason),
	)
	return nil
}

// review applies an admin decision to a pending record and notifies the
// customer. It returns the customer's email for the follow-up mail.
func (k *kycCommandsImpl) review(
	ctx context.Context,
	userID uuid.UUID,
	decide func(*kyc.Record) error,
	notifType notification.Type,
	title, message string,
) (user.Email, error) {
	target, err := k.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return user.Email{}, errs.Mark(err, ErrUserNotFound)
		}
		return user.Email{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var userEntry *notification.Notification
	err = k.tx.WithinTx(ctx, func(tx db.DBTX) error {
		record, txErr := k.kycRepo.FindByUserID(ctx, tx, userID)
		if txErr != nil {
			return txErr
		}
		if txErr := decide(record); txErr != nil {
			return markKycDecisionErr(txErr)
		}
		if txErr := k.kycRepo.Save(ctx, tx, record); txErr != nil {
			return txErr
		}

		userEntry, txErr = k.notifier.Emit(ctx, tx,
			notification.UserRecipient(userID),
			notifType,
			title, message,
			map[string]any{"user_id": userID.String()},
		)
		return txErr
	})
	if err != nil {
		return user.Email{}, k.classifyErr(err)
	}

	k.notifier.Broadcast(ctx, userEntry)
	return target.Email(), nil
}

// AcknowledgeNotice records the customer's acceptance of the booking notice.
// Approval alone does not open booking; this does.
func (k *kycCommandsImpl) AcknowledgeNotice(ctx context.Context, userID uuid.UUID) error {
	return k.mutate(ctx, userID, func(record *kyc.Record) error {
		return record.AcknowledgeNotice()
	})
}

func (k *kycCommandsImpl) StartProcedure(ctx context.Context, userID uuid.UUID) error {
	return k.mutate(ctx, userID, func(record *kyc.Record) error {
		return record.StartProcedure()
	})
}

func (k *kycCommandsImpl) CompleteProcedure(ctx context.Context, userID uuid.UUID, req reqdto.CompleteProcedureRequest) error {
	return k.mutate(ctx, userID, func(record *kyc.Record) error {
		return record.CompleteProcedure(req.Note, k.clock.Now())
	})
}

func (k *kycCommandsImpl) mutate(ctx context.Context, userID uuid.UUID, apply func(*kyc.Record) error) error {
	err := k.tx.WithinTx(ctx, func(tx db.DBTX) error {
		record, txErr := k.kycRepo.FindByUserID(ctx, tx, userID)
		if txErr != nil {
			return txErr
		}
		if txErr := apply(record); txErr != nil {
			return markKycDecisionErr(txErr)
		}
		return k.kycRepo.Save(ctx, tx, record)
	})
	if err != nil {
		return k.classifyErr(err)
	}
	return nil
}

func (k *kycCommandsImpl) classifyErr(err error) error {
	switch {
	case errs.Is(err, errs.ErrInvalidTransition),
		errs.Is(err, errs.ErrReasonRequired),
		errs.Is(err, errs.ErrNoteRequired):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrKycNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func markKycDecisionErr(err error) error {
	switch {
	case errs.Is(err, kyc.ErrBlankReason):
		return errs.Mark(err, errs.ErrReasonRequired)
	case errs.Is(err, kyc.ErrBlankNote):
		return errs.Mark(err, errs.ErrNoteRequired)
	default:
		return errs.Mark(err, errs.ErrInvalidTransition)
	}
}
