package planRepo

import (
	"context"

	"carebook/database"
	"carebook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the data-access boundary for service plans.
type Repository interface {
	Create(ctx context.Context, plan *models.ServicePlan) error
	GetByID(ctx context.Context, planID string) (*models.ServicePlan, error)
	GetByProviderID(ctx context.Context, providerID string) ([]models.ServicePlan, error)
	SetActive(ctx context.Context, providerID, planID string, active bool) error
}

type mongoPlanRepo struct {
	coll *mongo.Collection
}

// NewMongoPlanRepo constructs a MongoDB-backed Repository.
func NewMongoPlanRepo() Repository {
	return &mongoPlanRepo{
		coll: database.DB().Collection("service_plans"),
	}
}
