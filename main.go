// File: campday/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"campday/config"
	cronJobs "campday/cron"
	"campday/database"
	instanceRepo "campday/database/repository/instance"
	ruleRepo "campday/database/repository/rule"
	templateRepo "campday/database/repository/template"
	"campday/handlers"
	"campday/routes"
	"campday/services/automation"
	"campday/services/notification"
	"campday/services/recurrence"
	"campday/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	deliveryStore := utils.NewDeliveryStore()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	templates := templateRepo.NewMongoTemplateRepo()
	rules := ruleRepo.NewMongoRuleRepo()
	instances := instanceRepo.NewMongoInstanceRepo()
	if err := instances.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure instance indexes: %v", err)
	}

	// services.
	engine, err := recurrence.NewDefaultSchedulingEngine(templates, rules, instances)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize scheduling engine: %v", err)
	}
	scheduler := &automation.DefaultScheduler{}
	alertSink := notification.NewLogAlertSink(logger)

	// handlers.
	scheduleHandler := handlers.NewScheduleHandler(engine)
	automationHandler := handlers.NewAutomationHandler(rules, scheduler)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryStore, instances, rules, scheduler)

	routes.RegisterRoutes(router, scheduleHandler, automationHandler, deliveryHandler)

	// Background jobs: alert queue worker, automation sweep, nightly backfill.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAlertQueueDB,
	})
	defer asynqClient.Close()

	cronJobs.InitAlertWorker(alertSink)
	scheduledJobs, err := cronJobs.StartScheduledJobs(rules, templates, engine, scheduler, asynqClient, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start scheduled jobs: %v", err)
	}

	utils.StartHealthMonitor(deliveryStore.Client(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	scheduledJobs.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
