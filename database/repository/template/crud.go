// File: database/repository/template/crud.go
package templateRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"campday/models"
)

func (r *mongoTemplateRepo) GetByID(ctx context.Context, kind, id string) (*models.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "kind": kind}
	var tmpl models.Template
	if err := r.coll.FindOne(ctx, filter).Decode(&tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *mongoTemplateRepo) ListPublishedRecurring(ctx context.Context) ([]models.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":           models.StatusPublished,
		"recurrenceRuleId": bson.M{"$exists": true, "$ne": ""},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []models.Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
