// File: database/repository/rule/interface.go
package ruleRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"campday/database"
	"campday/models"
)

type RuleRepository interface {
	GetRecurrenceRule(ctx context.Context, id string) (*models.RecurrenceRule, error)
	GetAutomationRule(ctx context.Context, id string) (*models.AutomationRule, error)
	ListAutomationRules(ctx context.Context) ([]models.AutomationRule, error)
	ListActiveAutomationRules(ctx context.Context) ([]models.AutomationRule, error)
	SetAutomationRuleActive(ctx context.Context, id string, active bool) (*models.AutomationRule, error)
}

type mongoRuleRepo struct {
	recurrence  *mongo.Collection
	automations *mongo.Collection
}

// NewMongoRuleRepo constructs a new MongoDB RuleRepository over the
// recurrence_rules and automation_rules collections.
func NewMongoRuleRepo() RuleRepository {
	db := database.MongoClient.Database("campday")
	return &mongoRuleRepo{
		recurrence:  db.Collection("recurrence_rules"),
		automations: db.Collection("automation_rules"),
	}
}
