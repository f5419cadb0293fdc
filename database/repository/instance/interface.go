// File: database/repository/instance/interface.go
package instanceRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"campday/database"
	"campday/models"
)

// ErrDuplicateInstance is returned when an instance already exists for the
// same (parentId, date) pair. The unique index turns a concurrent expansion
// or a retry into a rejected duplicate rather than duplicated data.
var ErrDuplicateInstance = errors.New("instance already exists for this template and date")

type InstanceRepository interface {
	Create(ctx context.Context, inst *models.Instance) (*models.Instance, error)
	GetByID(ctx context.Context, kind, id string) (*models.Instance, error)
	ListUpcoming(ctx context.Context, kind, parentID, fromDate string, limit int64) ([]models.Instance, error)
	EnsureIndexes() error
}

type mongoInstanceRepo struct {
	coll *mongo.Collection
}

// NewMongoInstanceRepo constructs a new MongoDB InstanceRepository.
func NewMongoInstanceRepo() InstanceRepository {
	db := database.MongoClient.Database("campday")
	return &mongoInstanceRepo{
		coll: db.Collection("instances"),
	}
}
