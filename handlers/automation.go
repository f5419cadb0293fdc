package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	ruleRepo "campday/database/repository/rule"
	"campday/services/automation"
)

// AutomationHandler exposes automation-rule inspection and the fire-time
// preview used by the notification dispatcher.
type AutomationHandler struct {
	Rules     ruleRepo.RuleRepository
	Scheduler automation.Scheduler
}

func NewAutomationHandler(rules ruleRepo.RuleRepository, scheduler automation.Scheduler) *AutomationHandler {
	return &AutomationHandler{Rules: rules, Scheduler: scheduler}
}

func (h *AutomationHandler) ListRulesHandler(c *gin.Context) {
	rules, err := h.Rules.ListAutomationRules(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list automation rules", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules, "count": len(rules)})
}

func (h *AutomationHandler) SetRuleActiveHandler(c *gin.Context) {
	ruleID := c.Param("ruleID")

	var body struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid isActive in request body"})
		return
	}

	rule, err := h.Rules.SetAutomationRuleActive(c.Request.Context(), ruleID, *body.IsActive)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Automation rule not found", "ruleId": ruleID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update automation rule", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rule": rule})
}

// NextFireHandler previews when a rule's alert and cutoff next fire, at or
// after the "after" query parameter (default: now).
func (h *AutomationHandler) NextFireHandler(c *gin.Context) {
	ruleID := c.Param("ruleID")

	after := time.Now()
	if raw := c.Query("after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid after parameter; expected RFC 3339", "message": err.Error()})
			return
		}
		after = parsed
	}

	rule, err := h.Rules.GetAutomationRule(c.Request.Context(), ruleID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Automation rule not found", "ruleId": ruleID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch automation rule", "message": err.Error()})
		return
	}

	resp := gin.H{"ruleId": rule.ID, "isActive": rule.IsActive}
	if fire := h.Scheduler.NextFireTime(rule, after); fire != nil {
		resp["nextFireTime"] = fire.Format(time.RFC3339)
	}
	if cutoff := h.Scheduler.NextCutoffTime(rule, after); cutoff != nil {
		resp["nextCutoffTime"] = cutoff.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}
