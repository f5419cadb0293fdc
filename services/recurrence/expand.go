package recurrence

import (
	"math"
	"time"

	"campday/models"
)

// maxScanDays is the hard stop for the day walk when only the occurrence cap
// bounds a rule, e.g. a monthly rule on day 31 that rarely matches.
const maxScanDays = 1096

// Expand walks the window day by day and clones the template on every date
// matching the rule. The window is inclusive on both ends; windowEnd may be
// zero when the rule itself is bounded by an end date or an occurrence cap.
// The result is bounded by the window, the rule's end date and its occurrence
// cap, whichever is smallest. The template is never mutated.
//
// Weekly interval counting is anchored at windowStart: a rule with
// intervalCount 2 matches listed weekdays in the window's first week, skips
// the second, and so on. Monthly rules on day 29-31 skip months lacking that
// day entirely; the intended day is never clamped to month end.
func Expand(t *models.Template, rule *models.RecurrenceRule, windowStart, windowEnd time.Time, overrides *models.InstanceOverrides) ([]models.Instance, error) {
	norm, err := Normalize(rule)
	if err != nil {
		return nil, err
	}
	if norm.PatternType == models.PatternNone {
		return nil, nil
	}

	if windowEnd.IsZero() && norm.EndDate == "" && norm.MaxOccurrences == 0 {
		return nil, &UnboundedExpansionError{RuleID: norm.ID, TemplateID: t.ID}
	}

	anchor := atMidnight(windowStart)
	var endDate time.Time
	if norm.EndDate != "" {
		endDate, _ = time.Parse(DateLayout, norm.EndDate) // validity checked by Normalize
	}

	maxOcc := norm.MaxOccurrences
	if maxOcc == 0 {
		maxOcc = models.DefaultMaxOccurrences
	}
	hardStop := anchor.AddDate(0, 0, maxScanDays)

	var out []models.Instance
	for cursor := anchor; len(out) < maxOcc; cursor = cursor.AddDate(0, 0, 1) {
		if !windowEnd.IsZero() && cursor.After(atMidnight(windowEnd)) {
			break
		}
		if !endDate.IsZero() && cursor.After(endDate) {
			break
		}
		// The scan horizon guards cap-only walks; an explicit window end
		// or rule end date is a bound of its own and may span further.
		if windowEnd.IsZero() && endDate.IsZero() && cursor.After(hardStop) {
			break
		}
		if MatchesOn(norm, anchor, cursor) {
			out = append(out, Clone(t, cursor.Format(DateLayout), overrides))
		}
	}
	return out, nil
}

// MatchesOn reports whether day satisfies the rule's pattern, with interval
// counting anchored at anchor. Both times are taken at date precision.
func MatchesOn(rule *models.RecurrenceRule, anchor, day time.Time) bool {
	anchor, day = atMidnight(anchor), atMidnight(day)
	interval := rule.IntervalCount
	if interval < 1 {
		interval = 1
	}

	switch rule.PatternType {
	case models.PatternDaily:
		return daysBetween(anchor, day)%interval == 0
	case models.PatternWeekly:
		if !containsWeekday(rule.DaysOfWeek, int(day.Weekday())) {
			return false
		}
		// Whole weeks elapsed since the anchor, not calendar weeks.
		return (daysBetween(anchor, day)/7)%interval == 0
	case models.PatternMonthly:
		if day.Day() != rule.DayOfMonth {
			return false
		}
		return monthsBetween(anchor, day)%interval == 0
	}
	return false
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween rounds to whole days so DST-shortened days still count as one.
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func containsWeekday(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
