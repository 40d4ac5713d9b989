package api

import (
	"errors"
	"net/http"

	reqdto "brow-studio-api/internal/handler/dto/request"
	resdto "brow-studio-api/internal/handler/dto/response"
	"brow-studio-api/internal/handler/middleware"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/usecase/commands"
	"brow-studio-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(reservationCommands commands.ReservationCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Book an available slot
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Booking request"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.reservationCommands.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrKycNotApproved):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "An approved intake record is required before booking",
			})
		case errors.Is(err, errs.ErrNoticeNotAccepted):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "The booking notice must be acknowledged before booking",
			})
		case errors.Is(err, errs.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		case errors.Is(err, errs.ErrSlotNotBookable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Recurring templates cannot be booked directly",
			})
		case errors.Is(err, errs.ErrSlotNotAvailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot is no longer available",
			})
		case errors.Is(err, errs.ErrActiveReservationExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An active reservation already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Get reservation
// @Description Get one reservation; customers only see their own
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, errs.ErrNotReservationOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Reservation belongs to another user",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List own reservations
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.ReservationView
// @Router /reservations/me [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	views, err := h.reservationQueries.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Confirm payment
// @Description Record the customer's payment assertion
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/confirm-payment [post]
func (h *ReservationHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationCommands.ConfirmPayment(c.Request.Context(), userID, id); err != nil {
		h.lifecycleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel reservation
// @Description Customer-initiated cancellation of an active reservation
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationCommands.Cancel(c.Request.Context(), userID, id); err != nil {
		h.lifecycleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List all reservations
// @Description List every reservation, optionally filtered by status
// @Tags admin-reservations
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {array} queries.ReservationView
// @Router /admin/reservations [get]
func (h *ReservationHandler) ListAll(c *gin.Context) {
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	views, err := h.reservationQueries.ListAll(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Approve reservation
// @Tags admin-reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/reservations/{id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationCommands.Approve(c.Request.Context(), id); err != nil {
		h.lifecycleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Reject reservation
// @Description Reject a payment-confirmed reservation with a reason
// @Tags admin-reservations
// @Security BearerAuth
// @Accept json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReasonRequest true "Rejection reason"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/reservations/{id}/reject [post]
func (h *ReservationHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.reservationCommands.Reject(c.Request.Context(), id, req); err != nil {
		h.lifecycleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete reservation
// @Description Force-cancel a reservation from any state, with a reason
// @Tags admin-reservations
// @Security BearerAuth
// @Accept json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReasonRequest true "Deletion reason"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/reservations/{id} [delete]
func (h *ReservationHandler) AdminDelete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.reservationCommands.AdminDelete(c.Request.Context(), id, req); err != nil {
		h.lifecycleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) lifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, errs.ErrNotReservationOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Reservation belongs to another user",
		})
	case errors.Is(err, errs.ErrReasonRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "A non-empty reason is required",
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Transition not allowed from the current status",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
