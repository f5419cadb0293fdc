// File: database/repository/template/interface.go
package templateRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"campday/database"
	"campday/models"
)

type TemplateRepository interface {
	GetByID(ctx context.Context, kind, id string) (*models.Template, error)
	ListPublishedRecurring(ctx context.Context) ([]models.Template, error)
}

type mongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo constructs a new MongoDB TemplateRepository.
func NewMongoTemplateRepo() TemplateRepository {
	db := database.MongoClient.Database("campday")
	return &mongoTemplateRepo{
		coll: db.Collection("templates"),
	}
}
