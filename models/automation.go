package models

// Automation rule targets.
const (
	TargetMeals       = "meals"
	TargetEvents      = "events"
	TargetSurfLessons = "surf_lessons"
)

// KindForTarget maps an automation target to the template kind it governs.
func KindForTarget(target string) string {
	switch target {
	case TargetMeals:
		return KindMeal
	case TargetEvents:
		return KindEvent
	case TargetSurfLessons:
		return KindSurfLesson
	}
	return ""
}

// AutomationRule is a notification/cutoff policy. It shares the recurrence
// vocabulary with RecurrenceRule: the pattern describes on which dates the
// governed occurrences fall, and the offsets say how long before each
// occurrence the alert fires or ordering is cut off.
type AutomationRule struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Target string `bson:"target" json:"target"` // "meals", "events" or "surf_lessons"

	AlertDaysBefore int `bson:"alertDaysBefore" json:"alertDaysBefore"`
	AlertTime       int `bson:"alertTime" json:"alertTime"` // minutes from midnight

	CutoffEnabled    bool `bson:"cutoffEnabled" json:"cutoffEnabled"`
	CutoffDaysBefore int  `bson:"cutoffDaysBefore,omitempty" json:"cutoffDaysBefore,omitempty"`
	CutoffTime       int  `bson:"cutoffTime,omitempty" json:"cutoffTime,omitempty"` // minutes from midnight

	PatternType   string `bson:"patternType" json:"patternType"`
	IntervalCount int    `bson:"intervalCount,omitempty" json:"intervalCount,omitempty"`
	DaysOfWeek    []int  `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`
	DayOfMonth    int    `bson:"dayOfMonth,omitempty" json:"dayOfMonth,omitempty"`

	IsActive bool `bson:"isActive" json:"isActive"`
}

// Recurrence returns the rule's pattern as a RecurrenceRule so the scheduler
// can reuse the engine's date-matching logic.
func (r *AutomationRule) Recurrence() RecurrenceRule {
	return RecurrenceRule{
		ID:            r.ID,
		PatternType:   r.PatternType,
		IntervalCount: r.IntervalCount,
		DaysOfWeek:    r.DaysOfWeek,
		DayOfMonth:    r.DayOfMonth,
	}
}

// AlertPayload is the body of an enqueued alert job. Delivery itself is owned
// by an external dispatcher consuming the queue.
type AlertPayload struct {
	RuleID         string `json:"ruleId"`
	RuleName       string `json:"ruleName"`
	Target         string `json:"target"`
	OccurrenceDate string `json:"occurrenceDate"` // "YYYY-MM-DD"
	FireAt         string `json:"fireAt"`         // RFC 3339
}
