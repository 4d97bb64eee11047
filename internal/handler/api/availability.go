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
)

type AvailabilityHandler struct {
	availabilityCommands commands.AvailabilityCommands
	slotQueries          queries.SlotQueries
}

func NewAvailabilityHandler(availabilityCommands commands.AvailabilityCommands, slotQueries queries.SlotQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityCommands: availabilityCommands,
		slotQueries:          slotQueries,
	}
}

// @Summary Set availability
// @Description Replace the agent's weekly availability windows
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetAvailabilityRequest true "Availability definition"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /availability [put]
func (h *AvailabilityHandler) SetAvailability(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.SetAvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.availabilityCommands.SetAvailability(c.Request.Context(), agentID, req.ToInput()); err != nil {
		switch {
		// errs.Is, not errors.Is: the command attaches the sentinel as a mark
		case errs.Is(err, commands.ErrInvalidAvailability):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid availability definition",
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

// @Summary Get availability
// @Description Get the agent's current weekly availability
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.slotQueries.Availability(c.Request.Context(), agentID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAvailabilityNotSet):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Availability not set",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Get available slots
// @Description List bookable slots within a date range
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (RFC3339), defaults to now"
// @Param to query string false "Range end (RFC3339), defaults to from + 7 days"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/slots [get]
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	rangeStart, rangeEnd, err := parseSlotRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	slots, err := h.slotQueries.AvailableSlots(c.Request.Context(), agentID, rangeStart, rangeEnd)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAvailabilityNotSet):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Availability not set",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]resdto.SlotResponse, len(slots))
	for i, s := range slots {
		response[i] = resdto.FromSlotView(s)
	}
	c.JSON(http.StatusOK, response)
}

func parseSlotRange(c *gin.Context) (time.Time, time.Time, error) {
	rangeStart := time.Now()
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'from' timestamp, expected RFC3339")
		}
		rangeStart = parsed
	}

	rangeEnd := rangeStart.AddDate(0, 0, 7)
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'to' timestamp, expected RFC3339")
		}
		rangeEnd = parsed
	}

	if !rangeEnd.After(rangeStart) {
		return time.Time{}, time.Time{}, errors.New("'to' must be after 'from'")
	}
	return rangeStart, rangeEnd, nil
}
