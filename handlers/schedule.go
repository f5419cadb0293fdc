package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campday/models"
	"campday/services/recurrence"
	"campday/utils"
)

// ScheduleHandler exposes the instance-generation engine over HTTP.
type ScheduleHandler struct {
	Engine recurrence.SchedulingEngine
}

func NewScheduleHandler(engine recurrence.SchedulingEngine) *ScheduleHandler {
	return &ScheduleHandler{Engine: engine}
}

// GenerateInstancesHandler expands a template's recurrence rule over the
// requested window and persists the resulting instances.
func (h *ScheduleHandler) GenerateInstancesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	kind := c.Param("kind")
	templateID := c.Param("templateID")
	if !models.ValidKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown template kind", "kind": kind})
		return
	}

	// Every request field is optional; a body-less POST means open-ended
	// generation with defaults.
	var req models.GenerateInstancesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Error("Invalid generate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	instances, err := h.Engine.GenerateInstances(c.Request.Context(), kind, templateID, req.WindowStart, req.WindowEnd, req.Overrides)
	if err != nil {
		var invalidRule *recurrence.InvalidRuleError
		var unbounded *recurrence.UnboundedExpansionError
		var persistence *recurrence.PersistenceError
		switch {
		case errors.As(err, &invalidRule), errors.As(err, &unbounded):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot expand recurrence rule", "message": err.Error()})
		case errors.As(err, &persistence):
			// Partial success: return what was persisted so the caller can retry the gap.
			logger.Error("Instance generation partially failed", zap.String("templateId", templateID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Some instances could not be persisted",
				"message":   err.Error(),
				"instances": instances,
				"count":     len(instances),
			})
		default:
			logger.Error("Instance generation failed", zap.String("templateId", templateID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate instances", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instances": instances,
		"count":     len(instances),
	})
}

// GetUpcomingInstancesHandler lists a template's persisted instances from today onward.
func (h *ScheduleHandler) GetUpcomingInstancesHandler(c *gin.Context) {
	kind := c.Param("kind")
	templateID := c.Param("templateID")
	if !models.ValidKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown template kind", "kind": kind})
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	instances, err := h.Engine.UpcomingInstances(c.Request.Context(), kind, templateID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch upcoming instances", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"instances": instances, "count": len(instances)})
}
