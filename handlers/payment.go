package handlers

import (
	"errors"
	"net/http"

	"roomapp/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment sub-lifecycle over HTTP.
type PaymentHandler struct {
	Payments payment.Service
	Logger   *zap.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc payment.Service, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Payments: svc, Logger: logger}
}

// CreateIntentHandler handles POST /api/payments/create-intent.
func (h *PaymentHandler) CreateIntentHandler(c *gin.Context) {
	actorUID := c.GetString("authUID")

	var req struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	clientSecret, err := h.Payments.CreateIntent(c.Request.Context(), actorUID, req.BookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// WebhookHandler handles POST /api/payments/webhook. The route is mounted
// outside the auth middleware: the event's own signature is the credential.
func (h *PaymentHandler) WebhookHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if err := h.Payments.HandleWebhook(c.Request.Context(), payload, sig); err != nil {
		if errors.Is(err, payment.ErrBadSignature) {
			h.Logger.Warn("webhook signature rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// StatusHandler handles GET /api/payments/status/:bookingId.
func (h *PaymentHandler) StatusHandler(c *gin.Context) {
	actorUID := c.GetString("authUID")

	st, err := h.Payments.GetStatus(c.Request.Context(), actorUID, c.Param("bookingId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}
