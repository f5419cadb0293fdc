// File: database/repository/instance/crud.go
package instanceRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campday/models"
)

func (r *mongoInstanceRepo) Create(ctx context.Context, inst *models.Instance) (*models.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stored := *inst
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateInstance
		}
		return nil, err
	}
	return &stored, nil
}

func (r *mongoInstanceRepo) GetByID(ctx context.Context, kind, id string) (*models.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "kind": kind}
	var inst models.Instance
	if err := r.coll.FindOne(ctx, filter).Decode(&inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// ListUpcoming returns instances of a template on or after fromDate, ordered
// by date. Date strings sort lexicographically in calendar order.
func (r *mongoInstanceRepo) ListUpcoming(ctx context.Context, kind, parentID, fromDate string, limit int64) ([]models.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"kind":     kind,
		"parentId": parentID,
		"date":     bson.M{"$gte": fromDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}}).SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var instances []models.Instance
	if err := cursor.All(ctx, &instances); err != nil {
		return nil, err
	}
	return instances, nil
}
