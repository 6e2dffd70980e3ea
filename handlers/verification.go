package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carebook/middleware"
	"carebook/services/verification"
)

// VerificationHandler serves the on-site handshake: the provider fetches the
// token to display, the requester submits what they scanned.
type VerificationHandler struct {
	Service verification.Service
}

func NewVerificationHandler(service verification.Service) *VerificationHandler {
	return &VerificationHandler{Service: service}
}

// GetTokenHandler returns the token text for one of the provider's
// confirmed bookings. Rendering it as a QR code is the client's job.
func (h *VerificationHandler) GetTokenHandler(c *gin.Context) {
	token, err := h.Service.TokenFor(c.Request.Context(), middleware.ActorID(c), c.Param("bookingID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ScanHandler validates a scanned payload against the requester's target
// booking. Mismatch responses stay generic; the affected provider gets the
// details through a security alert instead.
func (h *VerificationHandler) ScanHandler(c *gin.Context) {
	var body struct {
		Payload string `json:"payload" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing scan payload"})
		return
	}

	res, err := h.Service.VerifyScan(c.Request.Context(), verification.ScanInput{
		BookingID: c.Param("bookingID"),
		ScannerID: middleware.ActorID(c),
		Payload:   body.Payload,
		Now:       time.Now(),
	})
	if err != nil {
		if errors.Is(err, verification.ErrMalformedToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unrecognized code"})
			return
		}
		respondServiceError(c, err)
		return
	}

	switch res.Outcome {
	case verification.OutcomeActivated, verification.OutcomeAlreadyActive:
		c.JSON(http.StatusOK, gin.H{"outcome": res.Outcome, "message": res.Message, "booking": res.Booking})
	case verification.OutcomeEarly:
		c.JSON(http.StatusConflict, gin.H{"outcome": res.Outcome, "message": res.Message})
	default:
		c.JSON(http.StatusForbidden, gin.H{"outcome": res.Outcome, "message": res.Message})
	}
}
