package routes

import (
	"strings"
	"time"

	"roomapp/config"
	"roomapp/handlers"
	"roomapp/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers profile and device endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, verifier middleware.TokenVerifier) {
	auth := api.Group("/auth")
	auth.Use(middleware.FirebaseAuth(verifier))
	{
		auth.POST("/register", hb.Auth.RegisterHandler)
		auth.GET("/me", hb.Auth.MeHandler)
		auth.PUT("/profile", hb.Auth.UpdateProfileHandler)
		auth.POST("/device-token", hb.Auth.RegisterDeviceHandler)
		auth.DELETE("/device-token", hb.Auth.UnregisterDeviceHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, verifier middleware.TokenVerifier) {
	bookings := api.Group("/bookings")
	bookings.Use(middleware.FirebaseAuth(verifier))
	{
		bookings.POST("", hb.Booking.CreateBookingHandler)
		bookings.PATCH("/:id/status", hb.Booking.UpdateStatusHandler)
		bookings.GET("/user/:uid", hb.Booking.ListUserBookingsHandler)
		bookings.GET("/:id", hb.Booking.GetBookingHandler)
	}
}

// RegisterPaymentRoutes registers payment endpoints. The webhook stays
// outside the auth middleware; its credential is the Stripe signature.
func RegisterPaymentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, verifier middleware.TokenVerifier) {
	payments := api.Group("/payments")
	payments.POST("/webhook", hb.Payment.WebhookHandler)

	authed := payments.Group("")
	authed.Use(middleware.FirebaseAuth(verifier))
	{
		authed.POST("/create-intent", hb.Payment.CreateIntentHandler)
		authed.GET("/status/:bookingId", hb.Payment.StatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, verifier middleware.TokenVerifier, cfg config.Config) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	RegisterAuthRoutes(api, hb, verifier)
	RegisterBookingRoutes(api, hb, verifier)
	RegisterPaymentRoutes(api, hb, verifier)
}
