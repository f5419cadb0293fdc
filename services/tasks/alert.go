package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"campday/models"
)

const TypeAlertFire = "alert:fire"

// NewAlertTask builds the asynq task for a due automation alert. The TaskID is
// derived from the rule and occurrence date so repeated sweeps enqueue each
// alert at most once.
func NewAlertTask(payload models.AlertPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAlertFire, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(payload.RuleID + ":" + payload.OccurrenceDate),
	}

	return task, opts, nil
}
