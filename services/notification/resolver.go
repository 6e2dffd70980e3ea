package notification

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"carebook/database"
)

// TokenResolver maps a recipient to their current FCM device token. The
// account system owns device registration; this service only reads the
// mapping it maintains.
type TokenResolver interface {
	TokenFor(ctx context.Context, recipientID, role string) (string, error)
}

type mongoTokenResolver struct {
	coll *mongo.Collection
}

// NewMongoTokenResolver reads device tokens from the shared store.
func NewMongoTokenResolver() TokenResolver {
	return &mongoTokenResolver{
		coll: database.DB().Collection("device_tokens"),
	}
}

func (r *mongoTokenResolver) TokenFor(ctx context.Context, recipientID, role string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		FCMToken string `bson:"fcm_token"`
	}
	filter := bson.M{"recipient_id": recipientID, "role": role}
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return "", err
	}
	return doc.FCMToken, nil
}
