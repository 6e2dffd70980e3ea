package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carebook/middleware"
	"carebook/models"
)

func newListRouter(service *MockBookingService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/bookings", func(c *gin.Context) {
		c.Set(middleware.CtxActorID, "R1")
		c.Set(middleware.CtxRole, role)
	}, NewBookingHandler(service).ListHandler)
	return router
}

func TestListHandler_FiltersByKnownStatus(t *testing.T) {
	service := &MockBookingService{}
	service.On("ListForRequester", mock.Anything, "R1", []models.BookingStatus{models.StatusConfirmed}).
		Return([]models.Booking{{ID: "B1", Status: models.StatusConfirmed}}, nil)
	router := newListRouter(service, models.RoleRequester)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings?status=confirmed", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"B1"`)
	service.AssertExpectations(t)
}

func TestListHandler_RejectsUnknownStatus(t *testing.T) {
	service := &MockBookingService{}
	router := newListRouter(service, models.RoleRequester)

	// A typo must be a 400, not a silently empty list.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings?status=comfirmed", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "ListForRequester", mock.Anything, mock.Anything, mock.Anything)
}

func TestListHandler_ProviderRoleUsesProviderListing(t *testing.T) {
	service := &MockBookingService{}
	service.On("ListForProvider", mock.Anything, "R1", []models.BookingStatus(nil)).
		Return([]models.Booking{}, nil)
	router := newListRouter(service, models.RoleProvider)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}
