package availabilityRepo

import (
	"context"

	"carebook/database"
	"carebook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the data-access boundary for availability rules. Rules are
// created and deleted by their provider and read-only to the booking flow.
type Repository interface {
	Create(ctx context.Context, rule *models.AvailabilityRule) error
	DeleteByID(ctx context.Context, providerID, ruleID string) error
	GetByProviderID(ctx context.Context, providerID string) ([]models.AvailabilityRule, error)
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a MongoDB-backed Repository.
func NewMongoAvailabilityRepo() Repository {
	return &mongoAvailabilityRepo{
		coll: database.DB().Collection("availability_rules"),
	}
}
