package planRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"carebook/models"
)

func (r *mongoPlanRepo) Create(ctx context.Context, plan *models.ServicePlan) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, plan)
	return err
}

func (r *mongoPlanRepo) GetByID(ctx context.Context, planID string) (*models.ServicePlan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var plan models.ServicePlan
	if err := r.coll.FindOne(ctx, bson.M{"id": planID}).Decode(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *mongoPlanRepo) GetByProviderID(ctx context.Context, providerID string) ([]models.ServicePlan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []models.ServicePlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mongoPlanRepo) SetActive(ctx context.Context, providerID, planID string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": planID, "provider_id": providerID}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
