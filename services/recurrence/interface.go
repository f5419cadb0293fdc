package recurrence

import (
	"context"
	"fmt"
	"time"

	instanceRepo "campday/database/repository/instance"
	ruleRepo "campday/database/repository/rule"
	templateRepo "campday/database/repository/template"
	"campday/models"
)

// SchedulingEngine expands recurring templates into concrete dated instances.
type SchedulingEngine interface {
	// GenerateInstances expands the template's recurrence rule over the window
	// and persists one instance per matching date. Dates that already have an
	// instance are skipped, so re-running over a partially generated window
	// only fills the gaps.
	GenerateInstances(ctx context.Context, kind, templateID, windowStart, windowEnd string, overrides *models.InstanceOverrides) ([]models.Instance, error)
	// UpcomingInstances lists the template's instances from today onward.
	UpcomingInstances(ctx context.Context, kind, parentID string, limit int64) ([]models.Instance, error)
}

// DefaultSchedulingEngine is the production implementation.
type DefaultSchedulingEngine struct {
	Templates templateRepo.TemplateRepository
	Rules     ruleRepo.RuleRepository
	Instances instanceRepo.InstanceRepository
	Now       func() time.Time // injected clock; defaults to time.Now
}

func NewDefaultSchedulingEngine(
	templates templateRepo.TemplateRepository,
	rules ruleRepo.RuleRepository,
	instances instanceRepo.InstanceRepository,
) (*DefaultSchedulingEngine, error) {
	if templates == nil || rules == nil || instances == nil {
		return nil, fmt.Errorf("scheduling engine initialization error: one or more repositories are nil")
	}
	return &DefaultSchedulingEngine{
		Templates: templates,
		Rules:     rules,
		Instances: instances,
		Now:       time.Now,
	}, nil
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}
