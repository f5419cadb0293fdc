package automation

import (
	"time"

	"campday/models"
	"campday/services/recurrence"
)

// searchHorizonDays is the hard stop for the next-occurrence search. A monthly
// pattern on day 31 with a large interval can go many months without a match.
const searchHorizonDays = 750

// Scheduler computes when automation rules fire relative to the occurrences
// they govern.
type Scheduler interface {
	// NextFireTime returns the next instant at or after `after` at which the
	// rule's alert should fire, or nil when the rule is inactive or its
	// pattern can never match.
	NextFireTime(rule *models.AutomationRule, after time.Time) *time.Time
	// NextCutoffTime is the cutoff counterpart, using the cutoff offset.
	NextCutoffTime(rule *models.AutomationRule, after time.Time) *time.Time
	// CutoffPassed reports whether ordering/changes for an occurrence on the
	// given date are blocked at instant now.
	CutoffPassed(rule *models.AutomationRule, occurrenceDate string, now time.Time) bool
}

// DefaultScheduler is the production implementation. It is stateless; the
// recurrence pattern is evaluated with interval counting anchored at `after`.
type DefaultScheduler struct{}

func (s *DefaultScheduler) NextFireTime(rule *models.AutomationRule, after time.Time) *time.Time {
	if !rule.IsActive {
		return nil
	}
	return s.nextOffsetTime(rule, after, rule.AlertDaysBefore, rule.AlertTime)
}

func (s *DefaultScheduler) NextCutoffTime(rule *models.AutomationRule, after time.Time) *time.Time {
	if !rule.IsActive || !rule.CutoffEnabled {
		return nil
	}
	return s.nextOffsetTime(rule, after, rule.CutoffDaysBefore, rule.CutoffTime)
}

// nextOffsetTime walks occurrence dates forward from `after` and returns the
// first fire instant (occurrence minus daysBefore, at timeOfDay) that has not
// already passed.
func (s *DefaultScheduler) nextOffsetTime(rule *models.AutomationRule, after time.Time, daysBefore, timeOfDay int) *time.Time {
	rec := rule.Recurrence()
	norm, err := recurrence.Normalize(&rec)
	if err != nil || norm.PatternType == models.PatternNone {
		return nil
	}

	anchor := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location())
	for d := 0; d <= searchHorizonDays; d++ {
		day := anchor.AddDate(0, 0, d)
		if !recurrence.MatchesOn(norm, anchor, day) {
			continue
		}
		fire := offsetInstant(day, daysBefore, timeOfDay)
		if !fire.Before(after) {
			return &fire
		}
	}
	return nil
}

func (s *DefaultScheduler) CutoffPassed(rule *models.AutomationRule, occurrenceDate string, now time.Time) bool {
	if !rule.IsActive || !rule.CutoffEnabled {
		return false
	}
	parsed, err := time.Parse(recurrence.DateLayout, occurrenceDate)
	if err != nil {
		return false
	}
	rec := rule.Recurrence()
	norm, err := recurrence.Normalize(&rec)
	if err != nil || norm.PatternType == models.PatternNone {
		return false
	}
	// A rule only governs dates its own pattern produces; a Saturday rule
	// must not block a Wednesday instance. Anchoring at the date itself
	// checks pattern membership without interval phase.
	if !recurrence.MatchesOn(norm, parsed, parsed) {
		return false
	}
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
	cutoff := offsetInstant(day, rule.CutoffDaysBefore, rule.CutoffTime)
	return !now.Before(cutoff)
}

// offsetInstant resolves "daysBefore + time-of-day" against an occurrence date.
func offsetInstant(day time.Time, daysBefore, timeOfDay int) time.Time {
	d := day.AddDate(0, 0, -daysBefore)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).
		Add(time.Duration(timeOfDay) * time.Minute)
}
