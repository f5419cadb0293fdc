// File: database/repository/rule/crud.go
package ruleRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campday/models"
)

func (r *mongoRuleRepo) GetRecurrenceRule(ctx context.Context, id string) (*models.RecurrenceRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rule models.RecurrenceRule
	if err := r.recurrence.FindOne(ctx, bson.M{"id": id}).Decode(&rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *mongoRuleRepo) GetAutomationRule(ctx context.Context, id string) (*models.AutomationRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rule models.AutomationRule
	if err := r.automations.FindOne(ctx, bson.M{"id": id}).Decode(&rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *mongoRuleRepo) ListAutomationRules(ctx context.Context) ([]models.AutomationRule, error) {
	return r.listAutomations(ctx, bson.M{})
}

func (r *mongoRuleRepo) ListActiveAutomationRules(ctx context.Context) ([]models.AutomationRule, error) {
	return r.listAutomations(ctx, bson.M{"isActive": true})
}

func (r *mongoRuleRepo) listAutomations(ctx context.Context, filter bson.M) ([]models.AutomationRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.automations.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.AutomationRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *mongoRuleRepo) SetAutomationRuleActive(ctx context.Context, id string, active bool) (*models.AutomationRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	after := options.After
	opts := &options.FindOneAndUpdateOptions{ReturnDocument: &after}
	update := bson.M{"$set": bson.M{"isActive": active}}

	var rule models.AutomationRule
	if err := r.automations.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&rule); err != nil {
		return nil, err
	}
	return &rule, nil
}
