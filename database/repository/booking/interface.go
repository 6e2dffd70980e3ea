package bookingRepo

import (
	"context"
	"errors"

	"carebook/database"
	"carebook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrStatusConflict is returned by UpdateStatus when the booking is no longer
// in the expected source status. Callers re-read and decide whether the
// observed state makes the operation a no-op or a real conflict.
var ErrStatusConflict = errors.New("booking status changed concurrently")

// Repository is the data-access boundary for bookings. Status writes go
// through UpdateStatus only, which compares against the expected source
// status so a transition can never be applied twice.
type Repository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error
	ListByProvider(ctx context.Context, providerID string, statuses ...models.BookingStatus) ([]models.Booking, error)
	ListByRequester(ctx context.Context, requesterID string, statuses ...models.BookingStatus) ([]models.Booking, error)
	// CountOverlapping counts non-cancelled bookings for the provider on the
	// date whose [start_minute, end) window intersects the given one. This is
	// an advisory double-booking check; it is not atomic with Create.
	CountOverlapping(ctx context.Context, providerID, date string, startMinute, endMinute int) (int64, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed Repository.
func NewMongoBookingRepo() Repository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
