package recurrence

import (
	"context"
	"errors"
	"fmt"
	"time"

	instanceRepo "campday/database/repository/instance"
	"campday/models"
)

// GenerateInstances implements the engine's main external operation.
//
// An empty windowStart defaults to today; an empty windowEnd leaves the
// expansion bounded by the rule's own end date or occurrence cap (refused with
// UnboundedExpansionError when neither is set). Persistence is not
// transactional across the batch: a failure mid-batch returns the instances
// persisted so far together with a PersistenceError naming the offending date,
// and the caller may retry the remaining window.
func (se *DefaultSchedulingEngine) GenerateInstances(ctx context.Context, kind, templateID, windowStart, windowEnd string, overrides *models.InstanceOverrides) ([]models.Instance, error) {
	if !models.ValidKind(kind) {
		return nil, fmt.Errorf("unknown template kind %q", kind)
	}

	start, end, err := se.resolveWindow(windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	tmpl, err := se.Templates.GetByID(ctx, kind, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template %q: %w", templateID, err)
	}
	if tmpl.Status == models.StatusArchived {
		return nil, fmt.Errorf("template %q is archived and cannot be expanded", templateID)
	}
	if tmpl.RecurrenceRuleID == "" {
		return nil, fmt.Errorf("template %q has no recurrence rule", templateID)
	}

	rule, err := se.Rules.GetRecurrenceRule(ctx, tmpl.RecurrenceRuleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recurrence rule %q: %w", tmpl.RecurrenceRuleID, err)
	}

	candidates, err := Expand(tmpl, rule, start, end, overrides)
	if err != nil {
		return nil, err
	}

	created := make([]models.Instance, 0, len(candidates))
	for _, candidate := range candidates {
		stored, err := se.Instances.Create(ctx, &candidate)
		if err != nil {
			if errors.Is(err, instanceRepo.ErrDuplicateInstance) {
				continue // already generated for this date; idempotent retry
			}
			return created, &PersistenceError{TemplateID: templateID, Date: candidate.Date, Err: err}
		}
		created = append(created, *stored)
	}
	return created, nil
}

// UpcomingInstances lists persisted instances of a template from today onward.
func (se *DefaultSchedulingEngine) UpcomingInstances(ctx context.Context, kind, parentID string, limit int64) ([]models.Instance, error) {
	if !models.ValidKind(kind) {
		return nil, fmt.Errorf("unknown template kind %q", kind)
	}
	if limit <= 0 {
		limit = 20
	}
	fromDate := se.now().Format(DateLayout)
	return se.Instances.ListUpcoming(ctx, kind, parentID, fromDate, limit)
}

// resolveWindow parses the caller's window. Open-ended generation is clamped
// to start no earlier than today.
func (se *DefaultSchedulingEngine) resolveWindow(windowStart, windowEnd string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if windowStart == "" {
		// Round-trip through the date layout so "today" lives in the same
		// zone as parsed window ends and rule end dates. A local-midnight
		// anchor west of UTC would sort after the end day's UTC midnight
		// and lose the inclusive last day.
		start, _ = time.Parse(DateLayout, se.now().Format(DateLayout))
	} else {
		start, err = time.Parse(DateLayout, windowStart)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid window start %q: %w", windowStart, err)
		}
	}

	if windowEnd != "" {
		end, err = time.Parse(DateLayout, windowEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid window end %q: %w", windowEnd, err)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("window end %s precedes window start %s", windowEnd, windowStart)
		}
	}

	return start, end, nil
}
