package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"carebook/handlers"
	"carebook/middleware"
	"carebook/models"
)

// RegisterAvailabilityRoutes registers rule management and slot lookup.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		// Requesters browse a provider's open slots before booking.
		api.GET("/slots", middleware.JWTAuth(""), hb.Availability.GetOpenSlotsHandler)

		rules := api.Group("/rules")
		rules.Use(middleware.JWTAuth(models.RoleProvider))
		rules.POST("", hb.Availability.CreateRuleHandler)
		rules.GET("", hb.Availability.ListRulesHandler)
		rules.DELETE("/:ruleID", hb.Availability.DeleteRuleHandler)
	}
}

// RegisterPlanRoutes registers service-plan management.
func RegisterPlanRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/plans")
	{
		api.GET("", middleware.JWTAuth(""), hb.Plans.ListPlansHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(models.RoleProvider))
		protected.POST("", hb.Plans.CreatePlanHandler)
		protected.PATCH("/:planID/active", hb.Plans.SetPlanActiveHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.GET("", middleware.JWTAuth(""), hb.Bookings.ListHandler)

		asRequester := api.Group("")
		asRequester.Use(middleware.JWTAuth(models.RoleRequester))
		asRequester.POST("", hb.Bookings.CreateBookingHandler)
		asRequester.POST("/:bookingID/cancel", hb.Bookings.CancelHandler)
		asRequester.POST("/:bookingID/scan", hb.Verification.ScanHandler)

		asProvider := api.Group("")
		asProvider.Use(middleware.JWTAuth(models.RoleProvider))
		asProvider.POST("/:bookingID/accept", hb.Bookings.AcceptHandler)
		asProvider.POST("/:bookingID/decline", hb.Bookings.DeclineHandler)
		asProvider.POST("/:bookingID/complete", hb.Bookings.CompleteHandler)
		asProvider.GET("/:bookingID/token", hb.Verification.GetTokenHandler)
	}
}

// RegisterPaymentRoutes registers the payment collaborator's webhook. It is
// authenticated by signature, not by JWT.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.Payments.StripeWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterPlanRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
