package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"carebook/config"
	"carebook/cron"
	"carebook/database"
	availabilityRepo "carebook/database/repository/availability"
	bookingRepo "carebook/database/repository/booking"
	planRepo "carebook/database/repository/plan"
	"carebook/handlers"
	"carebook/middleware"
	"carebook/routes"
	"carebook/services/booking"
	"carebook/services/notification"
	"carebook/services/verification"
	"carebook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	ctx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	if err := bookingRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to ensure booking indexes: %v", err)
	}
	cancelInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	rulesRepo := availabilityRepo.NewMongoAvailabilityRepo()
	plansRepo := planRepo.NewMongoPlanRepo()
	bookingsRepo := bookingRepo.NewMongoBookingRepo()

	// services.
	dispatcher := notification.NewAsynqDispatcher()
	defer dispatcher.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:     bookingsRepo,
		Rules:    rulesRepo,
		Plans:    plansRepo,
		Notifier: dispatcher,
	}
	verificationService := &verification.DefaultVerificationService{
		Bookings:  bookingsRepo,
		Lifecycle: bookingService,
		Notifier:  dispatcher,
	}

	// Background push delivery.
	cron.InitPushWorker(notification.NewMongoTokenResolver())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(rulesRepo, utils.GetCacheClient()),
		Plans:        handlers.NewPlanHandler(plansRepo),
		Bookings:     handlers.NewBookingHandler(bookingService),
		Verification: handlers.NewVerificationHandler(verificationService),
		Payments:     handlers.NewPaymentHandler(bookingService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
