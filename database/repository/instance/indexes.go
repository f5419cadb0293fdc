// File: database/repository/instance/indexes.go
package instanceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the instances collection.
func (r *mongoInstanceRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on Instance ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Natural key: one instance per template per date (idempotent generation)
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_parent_date"),
		},
		// Compound index for kind + parentId + date (upcoming-instances query)
		{
			Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "parentId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("kind_parent_date_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create instance indexes: %w", err)
	}
	return nil
}
