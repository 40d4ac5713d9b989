package api

import (
	"errors"
	"net/http"

	reqdto "brow-studio-api/internal/handler/dto/request"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/usecase/commands"
	"brow-studio-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type KycHandler struct {
	kycCommands commands.KycCommands
	kycQueries  queries.KycQueries
}

func NewKycHandler(kycCommands commands.KycCommands, kycQueries queries.KycQueries) *KycHandler {
	return &KycHandler{
		kycCommands: kycCommands,
		kycQueries:  kycQueries,
	}
}

// @Summary Submit intake record
// @Description Submit or resubmit the caller's intake profile and photos
// @Tags kyc
// @Security BearerAuth
// @Accept json
// @Param request body reqdto.SubmitKycRequest true "Intake submission"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /kyc/me [put]
func (h *KycHandler) Submit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req reqdto.SubmitKycRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.kycCommands.Submit(c.Request.Context(), userID, req); err != nil {
		switch {
		case isValidationErr(err):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid intake details",
			})
		case errors.Is(err, errs.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Record cannot be resubmitted in its current status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get own intake record
// @Tags kyc
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.KycView
// @Failure 404 {object} map[string]string
// @Router /kyc/me [get]
func (h *KycHandler) GetMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	view, err := h.kycQueries.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrKycNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No intake record on file",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Acknowledge booking notice
// @Description Accept the pre-procedure notice; required before booking
// @Tags kyc
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /kyc/me/acknowledge-notice [post]
func (h *KycHandler) AcknowledgeNotice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.kycCommands.AcknowledgeNotice(c.Request.Context(), userID); err != nil {
		h.recordError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List intake records
// @Description List every intake record, optionally filtered by status
// @Tags admin-kyc
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {array} queries.KycView
// @Router /admin/kyc [get]
func (h *KycHandler) ListAll(c *gin.Context) {
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	views, err := h.kycQueries.ListAll(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get a user's intake record
// @Tags admin-kyc
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} queries.KycView
// @Failure 404 {object} map[string]string
// @Router /admin/kyc/{userId} [get]
func (h *KycHandler) GetByUserID(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	view, err := h.kycQueries.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrKycNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No intake record on file",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Approve intake record
// @Tags admin-kyc
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/kyc/{userId}/approve [post]
func (h *KycHandler) Approve(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.kycCommands.Approve(c.Request.Context(), userID); err != nil {
		h.recordError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Reject intake record
// @Description Reject a pending intake record with a reason
// @Tags admin-kyc
// @Security BearerAuth
// @Accept json
// @Param userId path string true "User ID"
// @Param request body reqdto.ReasonRequest true "Rejection reason"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/kyc/{userId}/reject [post]
func (h *KycHandler) Reject(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
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

	if err := h.kycCommands.Reject(c.Request.Context(), userID, req); err != nil {
		h.recordError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Start procedure
// @Description Mark a customer's procedure as started
// @Tags admin-kyc
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/kyc/{userId}/procedure/start [post]
func (h *KycHandler) StartProcedure(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.kycCommands.StartProcedure(c.Request.Context(), userID); err != nil {
		h.recordError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Complete procedure
// @Description Mark a customer's procedure as completed, with a technique note
// @Tags admin-kyc
// @Security BearerAuth
// @Accept json
// @Param userId path string true "User ID"
// @Param request body reqdto.CompleteProcedureRequest true "Completion note"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/kyc/{userId}/procedure/complete [post]
func (h *KycHandler) CompleteProcedure(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req reqdto.CompleteProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.kycCommands.CompleteProcedure(c.Request.Context(), userID, req); err != nil {
		h.recordError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *KycHandler) recordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrKycNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No intake record on file",
		})
	case errors.Is(err, errs.ErrReasonRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "A non-empty reason is required",
		})
	case errors.Is(err, errs.ErrNoteRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "A non-empty procedure note is required",
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
