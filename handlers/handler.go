package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"carebook/services/booking"
)

// HandlerBundle groups the HTTP handlers for route registration.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Plans        *PlanHandler
	Bookings     *BookingHandler
	Verification *VerificationHandler
	Payments     *PaymentHandler
}

// respondServiceError translates service-layer failures into HTTP responses.
// Validation problems name the offending field or date; state conflicts are
// rejected whole; anything else is a 500 with no internals leaked.
func respondServiceError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	var sErr *booking.StateError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field, "date": vErr.Date})
	case errors.As(err, &sErr):
		c.JSON(http.StatusConflict, gin.H{"error": sErr.Error()})
	case errors.Is(err, booking.ErrNotOwned):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "message": err.Error()})
	}
}
