package routes

import (
	"github.com/gin-gonic/gin"

	"campday/handlers"
)

// RegisterRoutes registers all endpoints of the scheduling service.
func RegisterRoutes(
	r *gin.Engine,
	schedule *handlers.ScheduleHandler,
	automation *handlers.AutomationHandler,
	delivery *handlers.DeliveryHandler,
) {
	r.GET("/health", handlers.HealthHandler)

	sched := r.Group("/api/schedule")
	{
		sched.POST("/:kind/:templateID/generate", schedule.GenerateInstancesHandler)
		sched.GET("/:kind/:templateID/upcoming", schedule.GetUpcomingInstancesHandler)
	}

	auto := r.Group("/api/automation")
	{
		auto.GET("/rules", automation.ListRulesHandler)
		auto.PATCH("/rules/:ruleID/active", automation.SetRuleActiveHandler)
		auto.GET("/rules/:ruleID/next-fire", automation.NextFireHandler)
	}

	del := r.Group("/api/delivery")
	{
		del.GET("/:instanceID", delivery.GetDeliveryStatusHandler)
		del.PUT("/:instanceID", delivery.SetDeliveryStatusHandler)
	}
}
