package notification

import (
	"context"

	"go.uber.org/zap"

	"campday/models"
)

// AlertSink receives due alert jobs from the worker. Actual delivery (push,
// email, SMS) is owned by an external dispatcher; this service only hands the
// payload over.
type AlertSink interface {
	Deliver(ctx context.Context, payload models.AlertPayload) error
}

// LogAlertSink is the default sink: it records the hand-off and nothing else.
// Deployments with a real dispatcher replace it at wiring time.
type LogAlertSink struct {
	Logger *zap.Logger
}

func NewLogAlertSink(logger *zap.Logger) *LogAlertSink {
	return &LogAlertSink{Logger: logger}
}

func (s *LogAlertSink) Deliver(_ context.Context, payload models.AlertPayload) error {
	s.Logger.Info("alert due",
		zap.String("ruleId", payload.RuleID),
		zap.String("ruleName", payload.RuleName),
		zap.String("target", payload.Target),
		zap.String("occurrenceDate", payload.OccurrenceDate),
		zap.String("fireAt", payload.FireAt),
	)
	return nil
}
