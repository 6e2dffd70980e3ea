package availabilityRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"carebook/models"
)

func (r *mongoAvailabilityRepo) Create(ctx context.Context, rule *models.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, rule)
	return err
}

func (r *mongoAvailabilityRepo) DeleteByID(ctx context.Context, providerID, ruleID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": ruleID, "provider_id": providerID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) GetByProviderID(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}
