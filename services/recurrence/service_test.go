package recurrence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"campday/models"
)

func setupTestEngine() (*DefaultSchedulingEngine, *mockTemplateRepo, *mockRuleRepo, *mockInstanceRepo) {
	templates := newMockTemplateRepo()
	rules := newMockRuleRepo()
	instances := newMockInstanceRepo()
	engine := &DefaultSchedulingEngine{
		Templates: templates,
		Rules:     rules,
		Instances: instances,
		Now:       func() time.Time { return date("2026-01-05") },
	}
	return engine, templates, rules, instances
}

func seedWeekendEvent(templates *mockTemplateRepo, rules *mockRuleRepo) {
	templates.put(eventTemplate())
	rules.recurrence["rule-1"] = &models.RecurrenceRule{
		ID: "rule-1", PatternType: models.PatternWeekly, DaysOfWeek: []int{6, 0}, IntervalCount: 1,
	}
}

func TestGenerateInstances_WeekendScenario(t *testing.T) {
	engine, templates, rules, _ := setupTestEngine()
	seedWeekendEvent(templates, rules)

	created, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "2026-01-09", "2026-01-18", nil)
	if err != nil {
		t.Fatalf("GenerateInstances returned error: %v", err)
	}

	want := []string{"2026-01-10", "2026-01-11", "2026-01-17", "2026-01-18"}
	if len(created) != len(want) {
		t.Fatalf("expected %d instances, got %d", len(want), len(created))
	}
	for i, inst := range created {
		if inst.Date != want[i] {
			t.Errorf("instance %d: expected date %s, got %s", i, want[i], inst.Date)
		}
		if inst.ID == "" {
			t.Errorf("instance %s: expected assigned identity", inst.Date)
		}
		if inst.Event == nil || inst.Event.CurrentParticipants != 0 {
			t.Errorf("instance %s: expected participant count reset to 0", inst.Date)
		}
	}
}

func TestGenerateInstances_IdempotentRetry(t *testing.T) {
	engine, templates, rules, instances := setupTestEngine()
	seedWeekendEvent(templates, rules)

	first, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "2026-01-09", "2026-01-11", nil)
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 instances from first run, got %d", len(first))
	}

	// Re-run over a wider window: only the dates not yet persisted are created.
	second, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "2026-01-09", "2026-01-18", nil)
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}
	if len(second) != 2 {
		t.Errorf("expected 2 new instances from retry, got %d", len(second))
	}
	if len(instances.instances) != 4 {
		t.Errorf("expected 4 persisted instances total, got %d", len(instances.instances))
	}
}

func TestGenerateInstances_PartialPersistenceFailure(t *testing.T) {
	engine, templates, rules, instances := setupTestEngine()
	seedWeekendEvent(templates, rules)
	instances.failDates["2026-01-17"] = true

	created, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "2026-01-09", "2026-01-18", nil)

	var persistence *PersistenceError
	if !errors.As(err, &persistence) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if persistence.Date != "2026-01-17" {
		t.Errorf("error should name the offending date, got %s", persistence.Date)
	}
	// Instances before the failure are kept and returned.
	if len(created) != 2 {
		t.Errorf("expected 2 persisted instances before the failure, got %d", len(created))
	}
}

func TestGenerateInstances_ArchivedTemplateRefused(t *testing.T) {
	engine, templates, rules, _ := setupTestEngine()
	tmpl := eventTemplate()
	tmpl.Status = models.StatusArchived
	templates.put(tmpl)
	rules.recurrence["rule-1"] = &models.RecurrenceRule{ID: "rule-1", PatternType: models.PatternDaily}

	_, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "2026-01-09", "2026-01-11", nil)
	if err == nil || !strings.Contains(err.Error(), "archived") {
		t.Errorf("expected archived-template refusal, got %v", err)
	}
}

func TestGenerateInstances_UnknownKind(t *testing.T) {
	engine, _, _, _ := setupTestEngine()

	_, err := engine.GenerateInstances(context.Background(), "guest", "tpl-event", "2026-01-09", "2026-01-11", nil)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestGenerateInstances_TemplateWithoutRule(t *testing.T) {
	engine, templates, _, _ := setupTestEngine()
	tmpl := eventTemplate()
	tmpl.RecurrenceRuleID = ""
	templates.put(tmpl)

	_, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "2026-01-09", "2026-01-11", nil)
	if err == nil || !strings.Contains(err.Error(), "no recurrence rule") {
		t.Errorf("expected no-rule refusal, got %v", err)
	}
}

func TestGenerateInstances_EmptyWindowStartDefaultsToToday(t *testing.T) {
	engine, templates, rules, _ := setupTestEngine()
	templates.put(eventTemplate())
	rules.recurrence["rule-1"] = &models.RecurrenceRule{ID: "rule-1", PatternType: models.PatternDaily}

	// Clock pinned to 2026-01-05.
	created, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "", "2026-01-07", nil)
	if err != nil {
		t.Fatalf("GenerateInstances returned error: %v", err)
	}
	want := []string{"2026-01-05", "2026-01-06", "2026-01-07"}
	if len(created) != len(want) {
		t.Fatalf("expected %d instances, got %d", len(want), len(created))
	}
	for i := range want {
		if created[i].Date != want[i] {
			t.Errorf("instance %d: expected %s, got %s", i, want[i], created[i].Date)
		}
	}
}

func TestGenerateInstances_EmptyWindowStartInWesternZone(t *testing.T) {
	engine, templates, rules, _ := setupTestEngine()
	templates.put(eventTemplate())
	rules.recurrence["rule-1"] = &models.RecurrenceRule{ID: "rule-1", PatternType: models.PatternDaily}

	// A clock west of UTC must not push "today" past the window end's UTC
	// midnight and lose the inclusive last day.
	engine.Now = func() time.Time {
		return time.Date(2026, 1, 5, 10, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	}

	created, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "", "2026-01-07", nil)
	if err != nil {
		t.Fatalf("GenerateInstances returned error: %v", err)
	}
	want := []string{"2026-01-05", "2026-01-06", "2026-01-07"}
	if len(created) != len(want) {
		t.Fatalf("expected %d instances with inclusive window end, got %d (%v)", len(want), len(created), instanceDates(created))
	}
	for i := range want {
		if created[i].Date != want[i] {
			t.Errorf("instance %d: expected %s, got %s", i, want[i], created[i].Date)
		}
	}
}

func TestGenerateInstances_WindowEndBeforeStart(t *testing.T) {
	engine, templates, rules, _ := setupTestEngine()
	seedWeekendEvent(templates, rules)

	_, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "2026-01-18", "2026-01-09", nil)
	if err == nil {
		t.Fatal("expected error for inverted window")
	}
}

func TestUpcomingInstances(t *testing.T) {
	engine, templates, rules, _ := setupTestEngine()
	seedWeekendEvent(templates, rules)

	if _, err := engine.GenerateInstances(context.Background(), models.KindEvent, "tpl-event", "2026-01-09", "2026-01-18", nil); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	upcoming, err := engine.UpcomingInstances(context.Background(), models.KindEvent, "tpl-event", 2)
	if err != nil {
		t.Fatalf("UpcomingInstances returned error: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected limit of 2 instances, got %d", len(upcoming))
	}
	if upcoming[0].Date != "2026-01-10" || upcoming[1].Date != "2026-01-11" {
		t.Errorf("expected earliest upcoming dates first, got %v", instanceDates(upcoming))
	}
}
