package recurrence

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/mongo"

	instanceRepo "campday/database/repository/instance"
	"campday/models"
)

// In-memory repository doubles for engine tests.

type mockTemplateRepo struct {
	templates map[string]*models.Template // key: kind + "/" + id
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*models.Template)}
}

func (m *mockTemplateRepo) put(t *models.Template) {
	m.templates[t.Kind+"/"+t.ID] = t
}

func (m *mockTemplateRepo) GetByID(_ context.Context, kind, id string) (*models.Template, error) {
	if t, ok := m.templates[kind+"/"+id]; ok {
		return t, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockTemplateRepo) ListPublishedRecurring(_ context.Context) ([]models.Template, error) {
	var result []models.Template
	for _, t := range m.templates {
		if t.Status == models.StatusPublished && t.RecurrenceRuleID != "" {
			result = append(result, *t)
		}
	}
	return result, nil
}

type mockRuleRepo struct {
	recurrence  map[string]*models.RecurrenceRule
	automations map[string]*models.AutomationRule
}

func newMockRuleRepo() *mockRuleRepo {
	return &mockRuleRepo{
		recurrence:  make(map[string]*models.RecurrenceRule),
		automations: make(map[string]*models.AutomationRule),
	}
}

func (m *mockRuleRepo) GetRecurrenceRule(_ context.Context, id string) (*models.RecurrenceRule, error) {
	if r, ok := m.recurrence[id]; ok {
		return r, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockRuleRepo) GetAutomationRule(_ context.Context, id string) (*models.AutomationRule, error) {
	if r, ok := m.automations[id]; ok {
		return r, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockRuleRepo) ListAutomationRules(_ context.Context) ([]models.AutomationRule, error) {
	var result []models.AutomationRule
	for _, r := range m.automations {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRuleRepo) ListActiveAutomationRules(_ context.Context) ([]models.AutomationRule, error) {
	var result []models.AutomationRule
	for _, r := range m.automations {
		if r.IsActive {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRuleRepo) SetAutomationRuleActive(_ context.Context, id string, active bool) (*models.AutomationRule, error) {
	r, ok := m.automations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	r.IsActive = active
	return r, nil
}

type mockInstanceRepo struct {
	instances map[string]models.Instance // key: parentID + "|" + date
	failDates map[string]bool            // dates whose persist should fail
	nextID    int
}

func newMockInstanceRepo() *mockInstanceRepo {
	return &mockInstanceRepo{
		instances: make(map[string]models.Instance),
		failDates: make(map[string]bool),
	}
}

func (m *mockInstanceRepo) Create(_ context.Context, inst *models.Instance) (*models.Instance, error) {
	if m.failDates[inst.Date] {
		return nil, fmt.Errorf("simulated write failure for %s", inst.Date)
	}
	key := inst.ParentID + "|" + inst.Date
	if _, exists := m.instances[key]; exists {
		return nil, instanceRepo.ErrDuplicateInstance
	}
	m.nextID++
	stored := *inst
	stored.ID = fmt.Sprintf("inst-%d", m.nextID)
	m.instances[key] = stored
	return &stored, nil
}

func (m *mockInstanceRepo) GetByID(_ context.Context, kind, id string) (*models.Instance, error) {
	for _, inst := range m.instances {
		if inst.Kind == kind && inst.ID == id {
			copied := inst
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockInstanceRepo) ListUpcoming(_ context.Context, kind, parentID, fromDate string, limit int64) ([]models.Instance, error) {
	var result []models.Instance
	for _, inst := range m.instances {
		if inst.Kind == kind && inst.ParentID == parentID && inst.Date >= fromDate {
			result = append(result, inst)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	if int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockInstanceRepo) EnsureIndexes() error { return nil }
