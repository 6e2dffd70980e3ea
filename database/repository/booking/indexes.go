package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"carebook/database"
)

// EnsureIndexes creates the lookup indexes the booking queries rely on. The
// (provider_id, date, start_minute) index backs the overlap check; it does
// not make check-then-insert atomic, it only keeps the advisory check cheap.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	coll := database.DB().Collection("bookings")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}, {Key: "start_minute", Value: 1}}},
		{Keys: bson.D{{Key: "requester_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
