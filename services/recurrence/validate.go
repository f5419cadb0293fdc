package recurrence

import (
	"fmt"
	"time"

	"campday/models"
)

// DateLayout is the wire format for all dates handled by the engine.
const DateLayout = "2006-01-02"

// Normalize validates raw rule fields and returns a normalized copy: an unset
// interval count becomes 1. It does not check boundedness; that depends on the
// caller's window and is enforced at expansion time.
func Normalize(rule *models.RecurrenceRule) (*models.RecurrenceRule, error) {
	norm := *rule

	switch norm.PatternType {
	case models.PatternNone, models.PatternDaily, models.PatternWeekly, models.PatternMonthly:
	default:
		return nil, &InvalidRuleError{RuleID: norm.ID, Reason: fmt.Sprintf("unknown pattern type %q", norm.PatternType)}
	}

	if norm.IntervalCount < 0 {
		return nil, &InvalidRuleError{RuleID: norm.ID, Reason: fmt.Sprintf("interval count must be positive, got %d", norm.IntervalCount)}
	}
	if norm.IntervalCount == 0 {
		norm.IntervalCount = 1
	}

	if norm.PatternType == models.PatternWeekly {
		if len(norm.DaysOfWeek) == 0 {
			return nil, &InvalidRuleError{RuleID: norm.ID, Reason: "weekly rule has an empty day-of-week set"}
		}
		for _, d := range norm.DaysOfWeek {
			if d < 0 || d > 6 {
				return nil, &InvalidRuleError{RuleID: norm.ID, Reason: fmt.Sprintf("day of week %d outside 0-6", d)}
			}
		}
	}

	if norm.PatternType == models.PatternMonthly && (norm.DayOfMonth < 1 || norm.DayOfMonth > 31) {
		return nil, &InvalidRuleError{RuleID: norm.ID, Reason: fmt.Sprintf("day of month %d outside 1-31", norm.DayOfMonth)}
	}

	if norm.MaxOccurrences < 0 {
		return nil, &InvalidRuleError{RuleID: norm.ID, Reason: fmt.Sprintf("max occurrences must be positive, got %d", norm.MaxOccurrences)}
	}

	if norm.EndDate != "" {
		if _, err := time.Parse(DateLayout, norm.EndDate); err != nil {
			return nil, &InvalidRuleError{RuleID: norm.ID, Reason: fmt.Sprintf("end date %q is not a valid YYYY-MM-DD date", norm.EndDate)}
		}
	}

	return &norm, nil
}
