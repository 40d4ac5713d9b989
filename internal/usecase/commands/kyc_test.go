//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"brow-studio-api/internal/domain/kyc"
	"brow-studio-api/internal/domain/notification"
	"brow-studio-api/internal/domain/user"
	reqdto "brow-studio-api/internal/handler/dto/request"
	"brow-studio-api/internal/pkg/clock"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/usecase/commands"
	"brow-studio-api/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kycHarness struct {
	commands  commands.KycCommands
	kycRepo   *fakeKycRepo
	userRepo  *fakeUserRepo
	notifRepo *fakeNotificationRepo
	publisher *fakePublisher
	mailer    *fakeMailer
	clock     *clock.MockClock
	customer  *user.User
}

func newKycHarness(t *testing.T) *kycHarness {
	t.Helper()

	customer, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)

	h := &kycHarness{
		kycRepo:   newFakeKycRepo(),
		userRepo:  newFakeUserRepo(customer),
		notifRepo: newFakeNotificationRepo(),
		publisher: &fakePublisher{},
		mailer:    &fakeMailer{},
		clock:     clock.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)),
		customer:  customer,
	}

	m := testMetrics()
	logger := testLogger()
	notifier := commands.NewNotifier(h.notifRepo, h.publisher, h.mailer, m, logger)
	h.commands = commands.NewKycCommands(h.kycRepo, h.userRepo, notifier, passTxManager{}, h.clock, m, logger)
	return h
}

func submitRequest() reqdto.SubmitKycRequest {
	b := builder.NewKycBuilder()
	photo := func(data string) *reqdto.PhotoPayload {
		return &reqdto.PhotoPayload{Kind: "remote", Data: data}
	}
	return reqdto.SubmitKycRequest{
		Name:            b.Name,
		Gender:          b.Gender,
		BirthYear:       b.BirthYear,
		Phone:           b.Phone,
		ProvinceCode:    b.Province,
		DistrictCode:    b.District,
		SubDistrictCode: b.SubDistrict,
		AddressDetail:   b.AddressDetail,
		SkinType:        b.SkinType,
		LeftPhoto:       photo(b.LeftPhoto),
		FrontPhoto:      photo(b.FrontPhoto),
		RightPhoto:      photo(b.RightPhoto),
	}
}

func TestKycSubmit(t *testing.T) {
	t.Run("files a pending record and notifies the studio", func(t *testing.T) {
		h := newKycHarness(t)

		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), submitRequest()))

		record, err := h.kycRepo.FindByUserID(context.Background(), nil, h.customer.ID())
		require.NoError(t, err)
		assert.Equal(t, kyc.StatusPending, record.Status())
		assert.False(t, record.CanBook())

		require.Len(t, h.notifRepo.byType(notification.TypeKycSubmitted), 1)
	})

	t.Run("photos may be omitted entirely", func(t *testing.T) {
		h := newKycHarness(t)

		req := submitRequest()
		req.LeftPhoto, req.FrontPhoto, req.RightPhoto = nil, nil, nil
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), req))

		record, err := h.kycRepo.FindByUserID(context.Background(), nil, h.customer.ID())
		require.NoError(t, err)
		assert.True(t, record.Photos().Left.IsZero())
		assert.True(t, record.Photos().Front.IsZero())
		assert.True(t, record.Photos().Right.IsZero())
	})

	t.Run("resubmission after rejection resets to pending", func(t *testing.T) {
		h := newKycHarness(t)
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), submitRequest()))
		require.NoError(t, h.commands.Reject(context.Background(), h.customer.ID(), reqdto.ReasonRequest{Reason: "photos too dark"}))

		req := submitRequest()
		req.SkinTypeNote = "retook photos in daylight"
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), req))

		record, err := h.kycRepo.FindByUserID(context.Background(), nil, h.customer.ID())
		require.NoError(t, err)
		assert.Equal(t, kyc.StatusPending, record.Status())
		assert.Nil(t, record.RejectReason())
	})

	t.Run("invalid profile is refused", func(t *testing.T) {
		h := newKycHarness(t)
		req := submitRequest()
		req.BirthYear = 1850

		err := h.commands.Submit(context.Background(), h.customer.ID(), req)
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestKycReview(t *testing.T) {
	t.Run("approval notifies and mails the customer", func(t *testing.T) {
		h := newKycHarness(t)
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), submitRequest()))

		require.NoError(t, h.commands.Approve(context.Background(), h.customer.ID()))

		record, err := h.kycRepo.FindByUserID(context.Background(), nil, h.customer.ID())
		require.NoError(t, err)
		assert.Equal(t, kyc.StatusApproved, record.Status())
		// approval alone does not open booking
		assert.False(t, record.CanBook())

		entries := h.notifRepo.byType(notification.TypeKycApproved)
		require.Len(t, entries, 1)
		assert.Equal(t, notification.UserRecipient(h.customer.ID()), entries[0].Recipient())
		require.Len(t, h.mailer.sent, 1)
		assert.Equal(t, h.customer.Email().Value(), h.mailer.sent[0].To)
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		h := newKycHarness(t)
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), submitRequest()))

		err := h.commands.Reject(context.Background(), h.customer.ID(), reqdto.ReasonRequest{Reason: "  "})
		require.ErrorIs(t, err, errs.ErrReasonRequired)
	})

	t.Run("only pending records can be reviewed", func(t *testing.T) {
		h := newKycHarness(t)
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), submitRequest()))
		require.NoError(t, h.commands.Approve(context.Background(), h.customer.ID()))

		err := h.commands.Approve(context.Background(), h.customer.ID())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("review of a missing record", func(t *testing.T) {
		h := newKycHarness(t)
		err := h.commands.Approve(context.Background(), h.customer.ID())
		require.ErrorIs(t, err, errs.ErrKycNotFound)
	})
}

func TestKycAcknowledgeNotice(t *testing.T) {
	t.Run("acknowledgement opens booking", func(t *testing.T) {
		h := newKycHarness(t)
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), submitRequest()))
		require.NoError(t, h.commands.Approve(context.Background(), h.customer.ID()))

		require.NoError(t, h.commands.AcknowledgeNotice(context.Background(), h.customer.ID()))

		record, err := h.kycRepo.FindByUserID(context.Background(), nil, h.customer.ID())
		require.NoError(t, err)
		assert.True(t, record.CanBook())
	})

	t.Run("pending record cannot acknowledge", func(t *testing.T) {
		h := newKycHarness(t)
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), submitRequest()))

		err := h.commands.AcknowledgeNotice(context.Background(), h.customer.ID())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestKycProcedure(t *testing.T) {
	approve := func(t *testing.T, h *kycHarness) {
		t.Helper()
		require.NoError(t, h.commands.Submit(context.Background(), h.customer.ID(), submitRequest()))
		require.NoError(t, h.commands.Approve(context.Background(), h.customer.ID()))
	}

	t.Run("start then complete with a note", func(t *testing.T) {
		h := newKycHarness(t)
		approve(t, h)

		require.NoError(t, h.commands.StartProcedure(context.Background(), h.customer.ID()))
		require.NoError(t, h.commands.CompleteProcedure(context.Background(), h.customer.ID(), reqdto.CompleteProcedureRequest{Note: "3D stroke, dark brown"}))

		record, err := h.kycRepo.FindByUserID(context.Background(), nil, h.customer.ID())
		require.NoError(t, err)
		assert.Equal(t, kyc.ProcedureCompleted, record.ProcedureStatus())
		require.NotNil(t, record.ProcedureNote())
		assert.Equal(t, "3D stroke, dark brown", *record.ProcedureNote())
	})

	t.Run("completion requires a note", func(t *testing.T) {
		h := newKycHarness(t)
		approve(t, h)
		require.NoError(t, h.commands.StartProcedure(context.Background(), h.customer.ID()))

		err := h.commands.CompleteProcedure(context.Background(), h.customer.ID(), reqdto.CompleteProcedureRequest{Note: ""})
		require.ErrorIs(t, err, errs.ErrNoteRequired)
	})

	t.Run("completion before start is refused", func(t *testing.T) {
		h := newKycHarness(t)
		approve(t, h)

		err := h.commands.CompleteProcedure(context.Background(), h.customer.ID(), reqdto.CompleteProcedureRequest{Note: "done"})
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
