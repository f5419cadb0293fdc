package recurrence

import "campday/models"

// Clone produces one dated instance from a template. It is a pure function:
// identical inputs yield field-identical output, with identity left empty for
// the repository to assign. Per-occurrence state is reset by kind (meal
// portion counts and confirmation, event and lesson participant counts);
// everything else is carried verbatim, then overlaid with overrides.
func Clone(t *models.Template, date string, overrides *models.InstanceOverrides) models.Instance {
	inst := models.Instance{
		ParentID:    t.ID,
		Kind:        t.Kind,
		Date:        date,
		Name:        t.Name,
		Description: t.Description,
		Location:    t.Location,
		Start:       t.Start,
		End:         t.End,
		Capacity:    t.Capacity,
		Price:       t.Price,
		Status:      t.Status, // carried, not reset
	}

	switch t.Kind {
	case models.KindMeal:
		if t.Meal != nil {
			meal := *t.Meal
			meal.DietaryOptions = append([]string(nil), t.Meal.DietaryOptions...)
			meal.ActualPortions = 0
			meal.IsConfirmed = false
			inst.Meal = &meal
		}
	case models.KindEvent:
		if t.Event != nil {
			event := *t.Event
			event.CurrentParticipants = 0
			inst.Event = &event
		}
	case models.KindSurfLesson:
		if t.SurfLesson != nil {
			lesson := *t.SurfLesson
			lesson.CurrentParticipants = 0
			inst.SurfLesson = &lesson
		}
	}

	if overrides != nil {
		if overrides.Name != nil {
			inst.Name = *overrides.Name
		}
		if overrides.Location != nil {
			inst.Location = *overrides.Location
		}
		if overrides.Start != nil {
			inst.Start = *overrides.Start
		}
		if overrides.End != nil {
			inst.End = *overrides.End
		}
		if overrides.Capacity != nil {
			inst.Capacity = *overrides.Capacity
		}
		if overrides.Price != nil {
			inst.Price = *overrides.Price
		}
		if overrides.Status != nil {
			inst.Status = *overrides.Status
		}
	}

	return inst
}
