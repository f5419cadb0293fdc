package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"campday/config"
	ruleRepo "campday/database/repository/rule"
	templateRepo "campday/database/repository/template"
	"campday/models"
	"campday/services/automation"
	"campday/services/notification"
	"campday/services/recurrence"
	"campday/services/tasks"
)

// InitAlertWorker runs the async worker consuming due alert jobs in background.
func InitAlertWorker(sink notification.AlertSink) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAlertQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAlertFire, handleAlertTask(sink))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[AlertWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AlertWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AlertWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleAlertTask(sink notification.AlertSink) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.AlertPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[AlertHandler] Invalid payload: %v", err)
			return err
		}
		return sink.Deliver(ctx, p)
	}
}

// StartScheduledJobs registers the periodic jobs: the automation sweep that
// enqueues upcoming alerts, and the nightly backfill of recurring instances.
// The returned cron is already started; the caller stops it on shutdown.
func StartScheduledJobs(
	rules ruleRepo.RuleRepository,
	templates templateRepo.TemplateRepository,
	engine recurrence.SchedulingEngine,
	scheduler automation.Scheduler,
	client *asynq.Client,
	logger *zap.Logger,
) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc("@every 15m", func() {
		sweepAutomationRules(rules, scheduler, client, logger)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc("0 2 * * *", func() {
		backfillInstances(templates, engine, logger)
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

// sweepAutomationRules evaluates every active rule against "now" and enqueues
// an alert task for each fire time inside the sweep horizon. The task ID ties
// the job to (rule, occurrence date), so re-sweeping is a no-op.
func sweepAutomationRules(rules ruleRepo.RuleRepository, scheduler automation.Scheduler, client *asynq.Client, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	active, err := rules.ListActiveAutomationRules(ctx)
	if err != nil {
		logger.Error("automation sweep: failed to list active rules", zap.Error(err))
		return
	}

	now := time.Now()
	horizon := now.Add(time.Duration(config.AppConfig.AlertSweepHours) * time.Hour)

	for i := range active {
		rule := active[i]
		fireAt := scheduler.NextFireTime(&rule, now)
		if fireAt == nil || fireAt.After(horizon) {
			continue
		}

		occurrence := fireAt.AddDate(0, 0, rule.AlertDaysBefore).Format(recurrence.DateLayout)
		payload := models.AlertPayload{
			RuleID:         rule.ID,
			RuleName:       rule.Name,
			Target:         rule.Target,
			OccurrenceDate: occurrence,
			FireAt:         fireAt.Format(time.RFC3339),
		}

		task, opts, err := tasks.NewAlertTask(payload, *fireAt)
		if err != nil {
			logger.Error("automation sweep: failed to build alert task", zap.String("ruleId", rule.ID), zap.Error(err))
			continue
		}
		if _, err := client.EnqueueContext(ctx, task, opts...); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) {
				continue // already enqueued by a previous sweep
			}
			logger.Error("automation sweep: failed to enqueue alert", zap.String("ruleId", rule.ID), zap.Error(err))
		}
	}
}

// backfillInstances generates upcoming instances for every published recurring
// template. Existing dates are skipped by the engine, so the job is safe to
// re-run.
func backfillInstances(templates templateRepo.TemplateRepository, engine recurrence.SchedulingEngine, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	recurring, err := templates.ListPublishedRecurring(ctx)
	if err != nil {
		logger.Error("backfill: failed to list recurring templates", zap.Error(err))
		return
	}

	start := time.Now().Format(recurrence.DateLayout)
	end := time.Now().AddDate(0, 0, config.AppConfig.BackfillHorizonDays).Format(recurrence.DateLayout)

	for _, tmpl := range recurring {
		created, err := engine.GenerateInstances(ctx, tmpl.Kind, tmpl.ID, start, end, nil)
		if err != nil {
			logger.Error("backfill: generation failed",
				zap.String("templateId", tmpl.ID),
				zap.String("kind", tmpl.Kind),
				zap.Int("created", len(created)),
				zap.Error(err))
			continue
		}
		if len(created) > 0 {
			logger.Info("backfill: generated instances",
				zap.String("templateId", tmpl.ID),
				zap.String("kind", tmpl.Kind),
				zap.Int("created", len(created)))
		}
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAlertQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[AlertWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
