package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "brow-studio-api/internal/handler/dto/request"
	resdto "brow-studio-api/internal/handler/dto/response"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/usecase/commands"
	"brow-studio-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const defaultCatalogueWindow = 14 * 24 * time.Hour

type SlotHandler struct {
	slotCommands commands.SlotCommands
	slotQueries  queries.SlotQueries
}

func NewSlotHandler(slotCommands commands.SlotCommands, slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		slotCommands: slotCommands,
		slotQueries:  slotQueries,
	}
}

// @Summary List available slots
// @Description List bookable slots in a time window
// @Tags slots
// @Produce json
// @Param from query string false "Window start (RFC3339), defaults to now"
// @Param to query string false "Window end (RFC3339), defaults to two weeks out"
// @Success 200 {array} queries.SlotView
// @Failure 400 {object} map[string]string
// @Router /slots [get]
func (h *SlotHandler) ListAvailable(c *gin.Context) {
	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid from parameter",
			})
			return
		}
		from = parsed
	}

	to := from.Add(defaultCatalogueWindow)
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid to parameter",
			})
			return
		}
		to = parsed
	}

	views, err := h.slotQueries.ListAvailable(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary List all slots
// @Description List every slot and template, regardless of status
// @Tags admin-slots
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.SlotView
// @Router /admin/slots [get]
func (h *SlotHandler) ListAll(c *gin.Context) {
	views, err := h.slotQueries.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Create slots
// @Description Create a contiguous batch of custom slots
// @Tags admin-slots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateSlotsRequest true "Batch request"
// @Success 201 {object} resdto.IDsResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/slots [post]
func (h *SlotHandler) CreateSlots(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req reqdto.CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	ids, err := h.slotCommands.CreateCustomSlots(c.Request.Context(), adminID, req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidSlotRequest):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid slot parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.IDsResponse{IDs: ids})
}

// @Summary Create recurring template
// @Description Create a weekly recurring slot template
// @Tags admin-slots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateTemplateRequest true "Template request"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/slots/templates [post]
func (h *SlotHandler) CreateTemplate(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req reqdto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.slotCommands.CreateTemplate(c.Request.Context(), adminID, req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidSlotRequest):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid template parameters",
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

// @Summary Materialize templates
// @Description Expand recurring templates into concrete slots now
// @Tags admin-slots
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CountResponse
// @Router /admin/slots/materialize [post]
func (h *SlotHandler) Materialize(c *gin.Context) {
	count, err := h.slotCommands.MaterializeTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CountResponse{Count: count})
}

// @Summary Delete slot
// @Description Hard delete a slot or template
// @Tags admin-slots
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /admin/slots/{id} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.slotCommands.DeleteSlot(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
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
