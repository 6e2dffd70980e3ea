package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carebook/middleware"
	"carebook/models"
	"carebook/services/booking"
	"carebook/utils"
)

// BookingHandler exposes the booking lifecycle over HTTP. Who may call what
// is enforced here by role and in the service by ownership.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

// CreateBookingHandler submits a multi-date booking request for the
// authenticated requester. On a partial failure the rows created before the
// failing date are returned alongside the dated error; nothing past the
// failure exists.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	req.RequesterID = middleware.ActorID(c)

	created, err := h.Service.CreateBookings(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Warn("Booking creation stopped",
			zap.Int("created", len(created)), zap.Error(err))
		var vErr *booking.ValidationError
		status := http.StatusInternalServerError
		body := gin.H{"error": err.Error(), "bookings": created}
		if errors.As(err, &vErr) {
			status = http.StatusBadRequest
			body["field"] = vErr.Field
			body["date"] = vErr.Date
		}
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bookings": created})
}

// AcceptHandler is the provider taking a pending request.
func (h *BookingHandler) AcceptHandler(c *gin.Context) {
	b, err := h.Service.Accept(c.Request.Context(), middleware.ActorID(c), c.Param("bookingID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// DeclineHandler is the provider turning a pending request down.
func (h *BookingHandler) DeclineHandler(c *gin.Context) {
	b, err := h.Service.Decline(c.Request.Context(), middleware.ActorID(c), c.Param("bookingID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CancelHandler is the requester withdrawing a pending request.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	b, err := h.Service.Cancel(c.Request.Context(), middleware.ActorID(c), c.Param("bookingID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CompleteHandler ends an active session.
func (h *BookingHandler) CompleteHandler(c *gin.Context) {
	b, err := h.Service.Complete(c.Request.Context(), middleware.ActorID(c), c.Param("bookingID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListHandler returns the actor's bookings, optionally filtered by status.
func (h *BookingHandler) ListHandler(c *gin.Context) {
	actorID := middleware.ActorID(c)
	var statuses []models.BookingStatus
	if s := c.Query("status"); s != "" {
		status := models.BookingStatus(s)
		if !models.ValidStatus(status) {
			utils.JSONError(c, http.StatusBadRequest, "Unknown status filter", s)
			return
		}
		statuses = append(statuses, status)
	}

	var (
		bookings []models.Booking
		err      error
	)
	if middleware.Role(c) == models.RoleProvider {
		bookings, err = h.Service.ListForProvider(c.Request.Context(), actorID, statuses...)
	} else {
		bookings, err = h.Service.ListForRequester(c.Request.Context(), actorID, statuses...)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
