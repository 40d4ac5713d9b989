//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"brow-studio-api/internal/domain/user"
	"brow-studio-api/internal/handler/api"
	reqdto "brow-studio-api/internal/handler/dto/request"
	resdto "brow-studio-api/internal/handler/dto/response"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/usecase/queries"
	"brow-studio-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubReservationCommands struct {
	createID     uuid.UUID
	createErr    error
	lifecycleErr error
	lastReason   string
}

func (s *stubReservationCommands) Create(_ context.Context, _ uuid.UUID, _ reqdto.CreateReservationRequest) (uuid.UUID, error) {
	return s.createID, s.createErr
}

func (s *stubReservationCommands) ConfirmPayment(_ context.Context, _ uuid.UUID, _ uuid.UUID) error {
	return s.lifecycleErr
}

func (s *stubReservationCommands) Approve(_ context.Context, _ uuid.UUID) error {
	return s.lifecycleErr
}

func (s *stubReservationCommands) Reject(_ context.Context, _ uuid.UUID, req reqdto.ReasonRequest) error {
	s.lastReason = req.Reason
	return s.lifecycleErr
}

func (s *stubReservationCommands) Cancel(_ context.Context, _ uuid.UUID, _ uuid.UUID) error {
	return s.lifecycleErr
}

func (s *stubReservationCommands) AdminDelete(_ context.Context, _ uuid.UUID, req reqdto.ReasonRequest) error {
	s.lastReason = req.Reason
	return s.lifecycleErr
}

func (s *stubReservationCommands) ExpireDue(_ context.Context) (int, error) {
	return 0, nil
}

type stubReservationQueries struct {
	view    *queries.ReservationView
	views   []*queries.ReservationView
	err     error
	isAdmin bool
}

func (s *stubReservationQueries) GetByID(_ context.Context, _ uuid.UUID, isAdmin bool, _ uuid.UUID) (*queries.ReservationView, error) {
	s.isAdmin = isAdmin
	return s.view, s.err
}

func (s *stubReservationQueries) ListMine(_ context.Context, _ uuid.UUID) ([]*queries.ReservationView, error) {
	return s.views, s.err
}

func (s *stubReservationQueries) ListAll(_ context.Context, _ *string) ([]*queries.ReservationView, error) {
	return s.views, s.err
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubReservationCommands
	queries  *stubReservationQueries
	userID   uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.commands = &stubReservationCommands{}
	s.queries = &stubReservationQueries{}
	handler := api.NewReservationHandler(s.commands, s.queries)

	authed := s.router.Group("", func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
	})
	authed.POST("/reservations", handler.Create)
	authed.GET("/reservations/:id", handler.Get)
	authed.POST("/reservations/:id/confirm-payment", handler.ConfirmPayment)
	authed.POST("/reservations/:id/cancel", handler.Cancel)

	admin := s.router.Group("/admin", func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleAdmin)
	})
	admin.POST("/reservations/:id/approve", handler.Approve)
	admin.POST("/reservations/:id/reject", handler.Reject)
	admin.DELETE("/reservations/:id", handler.AdminDelete)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	body := reqdto.CreateReservationRequest{SlotID: uuid.New()}

	s.Run("success: 201 with the new reservation id", func() {
		s.commands.createID = uuid.New()
		s.commands.createErr = nil

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", body, "")

		var response resdto.IDResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(s.commands.createID, response.ID)
	})

	cases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"403 without an approved intake record", errs.ErrKycNotApproved, http.StatusForbidden},
		{"403 before the notice is acknowledged", errs.ErrNoticeNotAccepted, http.StatusForbidden},
		{"404 when the slot does not exist", errs.ErrSlotNotFound, http.StatusNotFound},
		{"422 when targeting a template", errs.ErrSlotNotBookable, http.StatusUnprocessableEntity},
		{"409 when the slot is taken", errs.ErrSlotNotAvailable, http.StatusConflict},
		{"409 with an active reservation", errs.ErrActiveReservationExists, http.StatusConflict},
	}
	for _, tc := range cases {
		s.Run("error: "+tc.name, func() {
			s.commands.createErr = tc.err

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", body, "")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}

	s.Run("error: 400 on missing slot id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	id := uuid.New()

	s.Run("success: returns the view", func() {
		s.queries.view = &queries.ReservationView{
			ID:          id,
			UserID:      s.userID,
			Status:      "payment_required",
			SlotStartAt: time.Now(),
		}
		s.queries.err = nil

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "")

		var response queries.ReservationView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(id, response.ID)
		s.False(s.queries.isAdmin)
	})

	s.Run("error: 403 for another user's reservation", func() {
		s.queries.view = nil
		s.queries.err = errs.ErrNotReservationOwner

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ReservationHandlerTestSuite) TestLifecycle() {
	id := uuid.New()

	s.Run("confirm payment: 204 on success", func() {
		s.commands.lifecycleErr = nil

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/confirm-payment", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("cancel: 403 for a non-owner", func() {
		s.commands.lifecycleErr = errs.ErrNotReservationOwner

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/cancel", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("approve: 422 before the payment deadline", func() {
		s.commands.lifecycleErr = errs.ErrInvalidTransition

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/"+id.String()+"/approve", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})

	s.Run("reject: passes the reason through", func() {
		s.commands.lifecycleErr = nil

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/"+id.String()+"/reject",
			reqdto.ReasonRequest{Reason: "payment never arrived"}, "")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Equal("payment never arrived", s.commands.lastReason)
	})

	s.Run("reject: 422 on a blank reason", func() {
		s.commands.lifecycleErr = errs.ErrReasonRequired

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/"+id.String()+"/reject",
			reqdto.ReasonRequest{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})

	s.Run("admin delete: 404 for an unknown reservation", func() {
		s.commands.lifecycleErr = errs.ErrReservationNotFound

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/reservations/"+id.String(),
			reqdto.ReasonRequest{Reason: "studio closure"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
