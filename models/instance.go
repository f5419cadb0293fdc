package models

import "time"

// Instance is one concrete, dated occurrence produced from a Template. It has
// the same shape as the template it came from, minus the recurrence rule
// back-reference: instances do not themselves recur.
type Instance struct {
	ID          string    `bson:"id" json:"id"`
	ParentID    string    `bson:"parentId" json:"parentId"` // originating Template
	Kind        string    `bson:"kind" json:"kind"`
	Date        string    `bson:"date" json:"date"` // "YYYY-MM-DD", resolved from the rule walk
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Start       int       `bson:"start" json:"start"` // minutes from midnight, carried from the template
	End         int       `bson:"end" json:"end"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	Price       float64   `bson:"price,omitempty" json:"price,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`

	Meal       *MealData       `bson:"meal,omitempty" json:"meal,omitempty"`
	Event      *EventData      `bson:"event,omitempty" json:"event,omitempty"`
	SurfLesson *SurfLessonData `bson:"surfLesson,omitempty" json:"surfLesson,omitempty"`
}

// InstanceOverrides are caller-supplied modifications applied on top of the
// cloned template fields. Nil fields keep the template's value.
type InstanceOverrides struct {
	Name     *string  `json:"name,omitempty"`
	Location *string  `json:"location,omitempty"`
	Start    *int     `json:"start,omitempty"`
	End      *int     `json:"end,omitempty"`
	Capacity *int     `json:"capacity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Status   *string  `json:"status,omitempty"`
}

// GenerateInstancesRequest is the payload for the generate endpoint.
type GenerateInstancesRequest struct {
	WindowStart string             `json:"windowStart"` // "YYYY-MM-DD"; empty means today
	WindowEnd   string             `json:"windowEnd"`   // "YYYY-MM-DD"; empty means bounded by the rule alone
	Overrides   *InstanceOverrides `json:"overrides,omitempty"`
}
