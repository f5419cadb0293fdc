package models

import "time"

// Entity kinds the scheduling engine can expand.
const (
	KindMeal       = "meal"
	KindEvent      = "event"
	KindSurfLesson = "surf_lesson"
)

// Template lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ValidKind reports whether kind names a known template kind.
func ValidKind(kind string) bool {
	return kind == KindMeal || kind == KindEvent || kind == KindSurfLesson
}

// Template is a recurring definition (meal, event, surf lesson) from which dated
// instances are generated. Templates are read-only to the scheduling engine;
// expansion never mutates them.
type Template struct {
	ID               string    `bson:"id" json:"id"`
	Kind             string    `bson:"kind" json:"kind"`                         // "meal", "event" or "surf_lesson"
	Name             string    `bson:"name" json:"name"`                         // e.g., "Weekend Special Event"
	Description      string    `bson:"description,omitempty" json:"description,omitempty"`
	Location         string    `bson:"location,omitempty" json:"location,omitempty"`
	Start            int       `bson:"start" json:"start"`                       // minutes from midnight (e.g., 420 for 7:00 AM)
	End              int       `bson:"end" json:"end"`                           // minutes from midnight
	Capacity         int       `bson:"capacity" json:"capacity"`                 // max participants or planned portions
	Price            float64   `bson:"price,omitempty" json:"price,omitempty"`
	Status           string    `bson:"status" json:"status"`                     // "draft", "published" or "archived"
	RecurrenceRuleID string    `bson:"recurrenceRuleId,omitempty" json:"recurrenceRuleId,omitempty"` // empty for non-recurring templates
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`

	Meal       *MealData       `bson:"meal,omitempty" json:"meal,omitempty"`             // non-nil when Kind is "meal"
	Event      *EventData      `bson:"event,omitempty" json:"event,omitempty"`           // non-nil when Kind is "event"
	SurfLesson *SurfLessonData `bson:"surfLesson,omitempty" json:"surfLesson,omitempty"` // non-nil when Kind is "surf_lesson"
}

// MealData carries the meal-specific payload of a template or instance.
type MealData struct {
	MealType        string   `bson:"mealType" json:"mealType"` // "breakfast", "lunch" or "dinner"
	DietaryOptions  []string `bson:"dietaryOptions,omitempty" json:"dietaryOptions,omitempty"`
	PlannedPortions int      `bson:"plannedPortions" json:"plannedPortions"`
	ActualPortions  int      `bson:"actualPortions" json:"actualPortions"`
	IsConfirmed     bool     `bson:"isConfirmed" json:"isConfirmed"`
}

// EventData carries the event-specific payload.
type EventData struct {
	Category            string `bson:"category,omitempty" json:"category,omitempty"` // e.g., "campfire", "excursion"
	CurrentParticipants int    `bson:"currentParticipants" json:"currentParticipants"`
}

// SurfLessonData carries the surf-lesson-specific payload.
type SurfLessonData struct {
	SkillLevel          string `bson:"skillLevel" json:"skillLevel"` // "beginner", "intermediate" or "advanced"
	InstructorID        string `bson:"instructorId,omitempty" json:"instructorId,omitempty"`
	CurrentParticipants int    `bson:"currentParticipants" json:"currentParticipants"`
}
