// File: roomapp/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomapp/config"
	"roomapp/database"
	bookingRepoPkg "roomapp/database/repository/booking"
	userRepoPkg "roomapp/database/repository/user"
	"roomapp/handlers"
	"roomapp/middleware"
	"roomapp/routes"
	"roomapp/services/booking"
	"roomapp/services/notification"
	"roomapp/services/payment"
	"roomapp/services/user"
	"roomapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx := context.Background()

	mongoClient, err := database.Connect(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	db := mongoClient.Database(config.AppConfig.DatabaseName)

	eventCache, err := utils.NewEventCacheClient(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
	}

	firebaseClients, err := utils.NewFirebaseClients(ctx, config.AppConfig.FirebaseCredentialsFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Firebase: %v", err)
	}

	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)

	// services.
	userService := &user.DefaultService{
		Repo:   userRepo,
		Logger: logger,
	}

	notificationService := &notification.DefaultService{
		Users:     userRepo,
		Messenger: firebaseClients.Messaging,
		Logger:    logger,
	}

	bookingService := &booking.DefaultService{
		Repo:     bookingRepo,
		Profiles: userRepo,
		Notifier: notificationService,
		Logger:   logger,
	}

	paymentService := &payment.DefaultService{
		Repo:    bookingRepo,
		Intents: payment.StripeIntentClient{},
		Dedup: &payment.RedisDeduper{
			Client: eventCache,
			Logger: logger,
		},
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
		Logger:        logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(userService, logger),
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Payment: handlers.NewPaymentHandler(paymentService, logger),
	}

	verifier := &middleware.FirebaseVerifier{Client: firebaseClients.Auth}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, verifier, config.AppConfig)

	utils.StartHealthMonitor(eventCache, mongoClient)

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
