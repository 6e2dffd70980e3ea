package handlers

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"carebook/config"
	"carebook/models"
	"carebook/services/booking"
)

// MockBookingService stands in for the lifecycle service in handler tests.
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBookings(ctx context.Context, req models.BookingRequest) ([]models.Booking, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingService) Accept(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, providerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Decline(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, providerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, requesterID, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, requesterID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Activate(ctx context.Context, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Complete(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, providerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) ListForProvider(ctx context.Context, providerID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	args := m.Called(ctx, providerID, statuses)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingService) ListForRequester(ctx context.Context, requesterID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	args := m.Called(ctx, requesterID, statuses)
	return args.Get(0).([]models.Booking), args.Error(1)
}

const webhookSecret = "whsec_test"

func paymentIntentEvent(bookingID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"api_version": %q,
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_1", "metadata": {"booking_id": %q}}}
	}`, stripe.APIVersion, bookingID))
}

func signedWebhookRequest(payload []byte) *http.Request {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, webhookSecret)
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig)))
	return req
}

func newWebhookRouter(service booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.AppConfig.StripeWebhookSecret = webhookSecret
	router := gin.New()
	router.POST("/payments/webhook", NewPaymentHandler(service).StripeWebhookHandler)
	return router
}

func TestStripeWebhook_ConfirmsPayment(t *testing.T) {
	service := &MockBookingService{}
	confirmed := &models.Booking{ID: "B1", Status: models.StatusConfirmed}
	service.On("ConfirmPayment", mock.Anything, "B1").Return(confirmed, nil)
	router := newWebhookRouter(service)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedWebhookRequest(paymentIntentEvent("B1")))

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertNumberOfCalls(t, "ConfirmPayment", 1)
}

func TestStripeWebhook_RedeliveryForSettledBookingIsAcknowledged(t *testing.T) {
	service := &MockBookingService{}
	service.On("ConfirmPayment", mock.Anything, "B1").Return(nil,
		&booking.StateError{BookingID: "B1", Status: models.StatusConfirmed, Op: "confirm payment"})
	router := newWebhookRouter(service)

	// Stripe retries any non-2xx, so a duplicate delivery must get a 200
	// even though the transition is refused.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedWebhookRequest(paymentIntentEvent("B1")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
}

func TestStripeWebhook_TransientFailureStaysRetryable(t *testing.T) {
	service := &MockBookingService{}
	service.On("ConfirmPayment", mock.Anything, "B1").Return(nil, errors.New("store unavailable"))
	router := newWebhookRouter(service)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedWebhookRequest(paymentIntentEvent("B1")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStripeWebhook_RejectsBadSignature(t *testing.T) {
	service := &MockBookingService{}
	router := newWebhookRouter(service)

	payload := paymentIntentEvent("B1")
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
}
