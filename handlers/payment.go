package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"carebook/config"
	"carebook/services/booking"
	"carebook/utils"
)

const maxWebhookBodyBytes = int64(65536)

// PaymentHandler receives the payment collaborator's signal. This service
// never initiates payment; it only reacts to confirmations arriving here.
type PaymentHandler struct {
	Service booking.BookingService
}

func NewPaymentHandler(service booking.BookingService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

// StripeWebhookHandler verifies the webhook signature and maps a succeeded
// payment intent (metadata booking_id) onto the waiting_payment->confirmed
// transition.
func (h *PaymentHandler) StripeWebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read webhook body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if event.Type != "payment_intent.succeeded" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		logger.Error("Failed to parse payment intent", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
		return
	}

	bookingID := intent.Metadata["booking_id"]
	if bookingID == "" {
		logger.Warn("Payment intent without booking_id metadata", zap.String("intent", intent.ID))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if _, err := h.Service.ConfirmPayment(c.Request.Context(), bookingID); err != nil {
		// Stripe retries on non-2xx. A state conflict means the confirmation
		// already landed (or the booking moved on); acknowledge it so the
		// event is not redelivered forever. Anything else stays non-2xx so
		// transient failures do get retried.
		var sErr *booking.StateError
		if errors.As(err, &sErr) {
			logger.Info("Duplicate payment confirmation acknowledged",
				zap.String("booking", bookingID), zap.String("status", string(sErr.Status)))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
