package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "viewing-scheduler/internal/handler/dto/request"
	resdto "viewing-scheduler/internal/handler/dto/response"
	"viewing-scheduler/internal/handler/middleware"
	"viewing-scheduler/internal/pkg/errs"
	"viewing-scheduler/internal/usecase/commands"
	"viewing-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ViewingHandler struct {
	viewingCommands commands.ViewingCommands
	viewingQueries  queries.ViewingQueries
}

func NewViewingHandler(viewingCommands commands.ViewingCommands, viewingQueries queries.ViewingQueries) *ViewingHandler {
	return &ViewingHandler{
		viewingCommands: viewingCommands,
		viewingQueries:  viewingQueries,
	}
}

// @Summary Book viewing
// @Description Book a property viewing for a customer conversation
// @Tags viewings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookViewingRequest true "Booking request"
// @Success 201 {object} resdto.ViewingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /viewings [post]
func (h *ViewingHandler) BookViewing(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.BookViewingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	entity, err := h.viewingCommands.BookViewing(c.Request.Context(), agentID, req.ToInput())
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromViewingEntity(entity))
}

// @Summary List viewings
// @Description List the agent's viewings with optional filters
// @Tags viewings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param from query string false "Scheduled on or after (RFC3339)"
// @Param to query string false "Scheduled before (RFC3339)"
// @Param property_id query string false "Filter by property"
// @Success 200 {array} resdto.ViewingListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /viewings [get]
func (h *ViewingHandler) ListViewings(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	filters, err := parseViewingFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	items, err := h.viewingQueries.List(c.Request.Context(), agentID, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ViewingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromViewingListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get viewing
// @Description Get one viewing by ID
// @Tags viewings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Viewing ID"
// @Success 200 {object} resdto.ViewingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /viewings/{id} [get]
func (h *ViewingHandler) GetViewing(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid viewing ID format",
		})
		return
	}

	view, err := h.viewingQueries.GetByID(c.Request.Context(), agentID, id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrViewingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Viewing not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromViewingView(view))
}

// @Summary Reschedule viewing
// @Description Move a viewing to a new time slot
// @Tags viewings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Viewing ID"
// @Param request body reqdto.RescheduleViewingRequest true "New time"
// @Success 200 {object} resdto.ViewingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /viewings/{id}/reschedule [post]
func (h *ViewingHandler) RescheduleViewing(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid viewing ID format",
		})
		return
	}

	var req reqdto.RescheduleViewingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	entity, err := h.viewingCommands.RescheduleViewing(c.Request.Context(), id, agentID, req.ToInput())
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromViewingEntity(entity))
}

// @Summary Cancel viewing
// @Description Cancel a viewing and its pending reminders
// @Tags viewings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Viewing ID"
// @Param request body reqdto.CancelViewingRequest false "Cancellation reason"
// @Success 200 {object} resdto.ViewingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /viewings/{id}/cancel [post]
func (h *ViewingHandler) CancelViewing(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, viewingID, agentID uuid.UUID) (*resdto.ViewingResponse, error) {
		var req reqdto.CancelViewingRequest
		if ctx.Request.ContentLength > 0 {
			if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
				return nil, errBadRequest
			}
		}
		entity, err := h.viewingCommands.CancelViewing(ctx.Request.Context(), viewingID, agentID, req.Reason)
		if err != nil {
			return nil, err
		}
		return resdto.FromViewingEntity(entity), nil
	})
}

// @Summary Confirm viewing
// @Description Confirm a scheduled viewing
// @Tags viewings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Viewing ID"
// @Success 200 {object} resdto.ViewingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /viewings/{id}/confirm [post]
func (h *ViewingHandler) ConfirmViewing(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, viewingID, agentID uuid.UUID) (*resdto.ViewingResponse, error) {
		entity, err := h.viewingCommands.ConfirmViewing(ctx.Request.Context(), viewingID, agentID)
		if err != nil {
			return nil, err
		}
		return resdto.FromViewingEntity(entity), nil
	})
}

// @Summary Complete viewing
// @Description Mark a viewing as held
// @Tags viewings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Viewing ID"
// @Success 200 {object} resdto.ViewingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /viewings/{id}/complete [post]
func (h *ViewingHandler) CompleteViewing(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, viewingID, agentID uuid.UUID) (*resdto.ViewingResponse, error) {
		entity, err := h.viewingCommands.CompleteViewing(ctx.Request.Context(), viewingID, agentID)
		if err != nil {
			return nil, err
		}
		return resdto.FromViewingEntity(entity), nil
	})
}

var errBadRequest = errors.New("invalid request format")

func (h *ViewingHandler) transition(c *gin.Context, fn func(*gin.Context, uuid.UUID, uuid.UUID) (*resdto.ViewingResponse, error)) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	viewingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid viewing ID format",
		})
		return
	}

	response, err := fn(c, viewingID, agentID)
	if err != nil {
		if errors.Is(err, errBadRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// respondCommandError maps command sentinels to status codes. Matching goes
// through errs.Is because the usecases attach sentinels as marks, which plain
// errors.Is cannot see.
func (h *ViewingHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Property not found",
		})
	case errs.Is(err, commands.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Conversation not found",
		})
	case errs.Is(err, commands.ErrViewingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Viewing not found",
		})
	case errs.Is(err, commands.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Requested slot is not available",
		})
	case errs.Is(err, commands.ErrIllegalStateTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Illegal state transition",
		})
	case errs.Is(err, commands.ErrInvalidViewingTime):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid viewing time",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseViewingFilters(c *gin.Context) (queries.ViewingFilters, error) {
	var filters queries.ViewingFilters

	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filters, errors.New("invalid 'from' timestamp, expected RFC3339")
		}
		filters.From = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filters, errors.New("invalid 'to' timestamp, expected RFC3339")
		}
		filters.To = &parsed
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		parsed, err := uuid.Parse(propertyID)
		if err != nil {
			return filters, errors.New("invalid 'property_id' format")
		}
		filters.PropertyID = &parsed
	}
	return filters, nil
}
