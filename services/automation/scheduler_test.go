package automation

import (
	"testing"
	"time"

	"campday/models"
)

func instant(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dailyRule() *models.AutomationRule {
	return &models.AutomationRule{
		ID:              "auto-1",
		Name:            "Kitchen headcount alert",
		Target:          models.TargetMeals,
		AlertDaysBefore: 1,
		AlertTime:       540, // 9:00 AM
		PatternType:     models.PatternDaily,
		IsActive:        true,
	}
}

func TestNextFireTime_Daily(t *testing.T) {
	s := &DefaultScheduler{}

	// The alert for the Jan 5 occurrence (Jan 4, 9:00) has already passed;
	// the next fire is the one for Jan 6.
	after := instant("2026-01-05T00:00:00Z")
	fire := s.NextFireTime(dailyRule(), after)
	if fire == nil {
		t.Fatal("expected a fire time")
	}
	if want := instant("2026-01-05T09:00:00Z"); !fire.Equal(want) {
		t.Errorf("expected fire at %v, got %v", want, fire)
	}
}

func TestNextFireTime_WeeklySaturday(t *testing.T) {
	s := &DefaultScheduler{}
	rule := &models.AutomationRule{
		ID:              "auto-2",
		Target:          models.TargetEvents,
		AlertDaysBefore: 2,
		AlertTime:       480, // 8:00 AM
		PatternType:     models.PatternWeekly,
		DaysOfWeek:      []int{6},
		IsActive:        true,
	}

	// Monday 2026-01-05; next Saturday is Jan 10, alert two days before.
	after := instant("2026-01-05T00:00:00Z")
	fire := s.NextFireTime(rule, after)
	if fire == nil {
		t.Fatal("expected a fire time")
	}
	if want := instant("2026-01-08T08:00:00Z"); !fire.Equal(want) {
		t.Errorf("expected fire at %v, got %v", want, fire)
	}
}

func TestNextFireTime_InactiveRule(t *testing.T) {
	s := &DefaultScheduler{}
	rule := dailyRule()
	rule.IsActive = false

	if fire := s.NextFireTime(rule, instant("2026-01-05T00:00:00Z")); fire != nil {
		t.Errorf("inactive rule must not fire, got %v", fire)
	}
}

func TestNextFireTime_PatternNeverMatches(t *testing.T) {
	s := &DefaultScheduler{}

	cases := []struct {
		name string
		rule models.AutomationRule
	}{
		{"weekly without days", models.AutomationRule{ID: "a", PatternType: models.PatternWeekly, IsActive: true}},
		{"pattern none", models.AutomationRule{ID: "a", PatternType: models.PatternNone, IsActive: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if fire := s.NextFireTime(&tc.rule, instant("2026-01-05T00:00:00Z")); fire != nil {
				t.Errorf("expected no fire time, got %v", fire)
			}
		})
	}
}

func TestNextCutoffTime(t *testing.T) {
	s := &DefaultScheduler{}
	rule := dailyRule()
	rule.CutoffEnabled = true
	rule.CutoffDaysBefore = 1
	rule.CutoffTime = 720 // noon

	after := instant("2026-01-05T00:00:00Z")
	cutoff := s.NextCutoffTime(rule, after)
	if cutoff == nil {
		t.Fatal("expected a cutoff time")
	}
	if want := instant("2026-01-05T12:00:00Z"); !cutoff.Equal(want) {
		t.Errorf("expected cutoff at %v, got %v", want, cutoff)
	}
}

func TestNextCutoffTime_Disabled(t *testing.T) {
	s := &DefaultScheduler{}
	rule := dailyRule() // CutoffEnabled false

	if cutoff := s.NextCutoffTime(rule, instant("2026-01-05T00:00:00Z")); cutoff != nil {
		t.Errorf("cutoff disabled, expected nil, got %v", cutoff)
	}
}

func TestCutoffPassed(t *testing.T) {
	s := &DefaultScheduler{}
	rule := dailyRule()
	rule.CutoffEnabled = true
	rule.CutoffDaysBefore = 1
	rule.CutoffTime = 720 // noon the day before

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before cutoff", instant("2026-01-09T11:59:00Z"), false},
		{"at cutoff", instant("2026-01-09T12:00:00Z"), true},
		{"after cutoff", instant("2026-01-09T13:00:00Z"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.CutoffPassed(rule, "2026-01-10", tc.now); got != tc.want {
				t.Errorf("CutoffPassed(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestCutoffPassed_OnlyGovernsMatchingDates(t *testing.T) {
	s := &DefaultScheduler{}
	rule := &models.AutomationRule{
		ID:               "auto-4",
		Target:           models.TargetMeals,
		PatternType:      models.PatternWeekly,
		DaysOfWeek:       []int{6}, // Saturdays
		CutoffEnabled:    true,
		CutoffDaysBefore: 1,
		CutoffTime:       720,
		IsActive:         true,
	}

	now := instant("2026-02-01T00:00:00Z") // long past both dates

	// 2026-01-14 is a Wednesday; a Saturday rule does not govern it.
	if s.CutoffPassed(rule, "2026-01-14", now) {
		t.Error("rule pattern does not produce this date: must not block")
	}
	// 2026-01-10 is a Saturday and its cutoff has long passed.
	if !s.CutoffPassed(rule, "2026-01-10", now) {
		t.Error("expected Saturday occurrence to be past cutoff")
	}
}

func TestCutoffPassed_DisabledOrInactive(t *testing.T) {
	s := &DefaultScheduler{}

	rule := dailyRule()
	if s.CutoffPassed(rule, "2026-01-10", instant("2026-02-01T00:00:00Z")) {
		t.Error("cutoff disabled: must not block")
	}

	rule.CutoffEnabled = true
	rule.IsActive = false
	if s.CutoffPassed(rule, "2026-01-10", instant("2026-02-01T00:00:00Z")) {
		t.Error("inactive rule: must not block")
	}
}

func TestNextFireTime_MonthlyDay31(t *testing.T) {
	s := &DefaultScheduler{}
	rule := &models.AutomationRule{
		ID:              "auto-3",
		Target:          models.TargetMeals,
		AlertDaysBefore: 0,
		AlertTime:       360, // 6:00 AM
		PatternType:     models.PatternMonthly,
		DayOfMonth:      31,
		IsActive:        true,
	}

	// From Feb 1 the next day-31 occurrence is March 31; February is skipped.
	after := instant("2026-02-01T00:00:00Z")
	fire := s.NextFireTime(rule, after)
	if fire == nil {
		t.Fatal("expected a fire time")
	}
	if want := instant("2026-03-31T06:00:00Z"); !fire.Equal(want) {
		t.Errorf("expected fire at %v, got %v", want, fire)
	}
}
