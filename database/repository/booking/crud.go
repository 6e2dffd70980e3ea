package bookingRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"carebook/models"
)

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, booking)
	return err
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus applies from->to as a conditional write. A zero match means
// some other caller moved the booking first.
func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *mongoBookingRepo) ListByProvider(ctx context.Context, providerID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"provider_id": providerID}, statuses)
}

func (r *mongoBookingRepo) ListByRequester(ctx context.Context, requesterID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"requester_id": requesterID}, statuses)
}

func (r *mongoBookingRepo) list(ctx context.Context, filter bson.M, statuses []models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) CountOverlapping(ctx context.Context, providerID, date string, startMinute, endMinute int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Two windows [a,b) and [c,d) intersect iff a < d and c < b. end is
	// derived: start_minute + duration_hours*60.
	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      bson.M{"$ne": models.StatusCancelled},
		"start_minute": bson.M{"$lt": endMinute},
		"$expr": bson.M{
			"$gt": bson.A{
				bson.M{"$add": bson.A{"$start_minute", bson.M{"$multiply": bson.A{"$duration_hours", 60}}}},
				startMinute,
			},
		},
	}
	return r.coll.CountDocuments(ctx, filter)
}
