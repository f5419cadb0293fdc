package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	instanceRepo "campday/database/repository/instance"
	ruleRepo "campday/database/repository/rule"
	"campday/models"
	"campday/services/automation"
	"campday/utils"
)

// DeliveryHandler tracks per-order meal delivery state. Writes are blocked
// once a meals automation rule's cutoff has passed for the instance date.
type DeliveryHandler struct {
	Store     *utils.DeliveryStore
	Instances instanceRepo.InstanceRepository
	Rules     ruleRepo.RuleRepository
	Scheduler automation.Scheduler
}

func NewDeliveryHandler(store *utils.DeliveryStore, instances instanceRepo.InstanceRepository, rules ruleRepo.RuleRepository, scheduler automation.Scheduler) *DeliveryHandler {
	return &DeliveryHandler{Store: store, Instances: instances, Rules: rules, Scheduler: scheduler}
}

func (h *DeliveryHandler) GetDeliveryStatusHandler(c *gin.Context) {
	instanceID := c.Param("instanceID")
	option := c.Query("option")
	orderID := c.Query("orderId")
	if option == "" || orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing option or orderId query parameter"})
		return
	}

	delivered, err := h.Store.Get(c.Request.Context(), instanceID, option, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read delivery status", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instanceId": instanceID,
		"option":     option,
		"orderId":    orderID,
		"delivered":  delivered,
	})
}

func (h *DeliveryHandler) SetDeliveryStatusHandler(c *gin.Context) {
	instanceID := c.Param("instanceID")

	var body struct {
		Option    string `json:"option" binding:"required"`
		OrderID   string `json:"orderId" binding:"required"`
		Delivered *bool  `json:"delivered" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	inst, err := h.Instances.GetByID(c.Request.Context(), models.KindMeal, instanceID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal instance not found", "instanceId": instanceID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal instance", "message": err.Error()})
		return
	}

	if passed, rule := h.cutoffPassed(c, inst.Date); passed {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Ordering cutoff has passed for this meal",
			"ruleId": rule,
			"date":   inst.Date,
		})
		return
	}

	if err := h.Store.Set(c.Request.Context(), instanceID, body.Option, body.OrderID, *body.Delivered); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery status", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instanceId": instanceID,
		"option":     body.Option,
		"orderId":    body.OrderID,
		"delivered":  *body.Delivered,
	})
}

// cutoffPassed checks the instance date against every active meals rule with a
// cutoff. Rule listing failures fail open: a broken rules collection should
// not freeze meal delivery tracking.
func (h *DeliveryHandler) cutoffPassed(c *gin.Context, date string) (bool, string) {
	rules, err := h.Rules.ListActiveAutomationRules(c.Request.Context())
	if err != nil {
		utils.GetLogger().Warn("delivery: failed to list automation rules; skipping cutoff check", zap.Error(err))
		return false, ""
	}
	now := time.Now()
	for i := range rules {
		if rules[i].Target != models.TargetMeals {
			continue
		}
		if h.Scheduler.CutoffPassed(&rules[i], date, now) {
			return true, rules[i].ID
		}
	}
	return false, ""
}
