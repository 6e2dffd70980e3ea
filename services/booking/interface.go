package booking

import (
	"context"

	availabilityRepo "carebook/database/repository/availability"
	bookingRepo "carebook/database/repository/booking"
	planRepo "carebook/database/repository/plan"
	"carebook/models"
	"carebook/services/notification"
)

// BookingService owns the booking lifecycle. Every status change in the
// system goes through one of these methods; Activate is reserved for the
// on-site verification protocol.
type BookingService interface {
	CreateBookings(ctx context.Context, req models.BookingRequest) ([]models.Booking, error)
	Accept(ctx context.Context, providerID, bookingID string) (*models.Booking, error)
	Decline(ctx context.Context, providerID, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, requesterID, bookingID string) (*models.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID string) (*models.Booking, error)
	Activate(ctx context.Context, bookingID string) (*models.Booking, error)
	Complete(ctx context.Context, providerID, bookingID string) (*models.Booking, error)
	ListForProvider(ctx context.Context, providerID string, statuses ...models.BookingStatus) ([]models.Booking, error)
	ListForRequester(ctx context.Context, requesterID string, statuses ...models.BookingStatus) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.Repository
	Rules    availabilityRepo.Repository
	Plans    planRepo.Repository
	Notifier notification.Service
}
