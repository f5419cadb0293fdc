package models

// Recurrence pattern types.
const (
	PatternNone    = "none"
	PatternDaily   = "daily"
	PatternWeekly  = "weekly"
	PatternMonthly = "monthly"
)

// DefaultMaxOccurrences caps a single expansion when the rule does not set its
// own occurrence limit, to bound runaway generation.
const DefaultMaxOccurrences = 100

// RecurrenceRule is the repeating pattern governing expansion of a template
// into dated instances.
type RecurrenceRule struct {
	ID             string `bson:"id" json:"id"`
	PatternType    string `bson:"patternType" json:"patternType"`                       // "none", "daily", "weekly" or "monthly"
	IntervalCount  int    `bson:"intervalCount,omitempty" json:"intervalCount,omitempty"` // every N days/weeks/months; 0 means 1
	DaysOfWeek     []int  `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`     // 0=Sunday … 6=Saturday; weekly only
	DayOfMonth     int    `bson:"dayOfMonth,omitempty" json:"dayOfMonth,omitempty"`     // 1–31; monthly only
	EndDate        string `bson:"endDate,omitempty" json:"endDate,omitempty"`           // "YYYY-MM-DD", inclusive
	MaxOccurrences int    `bson:"maxOccurrences,omitempty" json:"maxOccurrences,omitempty"` // 0 means DefaultMaxOccurrences
}
