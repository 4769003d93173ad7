package handlers

import (
	"net/http"
	"time"

	"roomapp/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Bookings booking.Service
	Logger   *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Bookings: svc, Logger: logger}
}

type createBookingRequest struct {
	StylistUID  string  `json:"stylistUid"`
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	DateTime    string  `json:"dateTime"`
	Price       float64 `json:"price"`
	ClientNotes string  `json:"clientNotes"`
	Location    string  `json:"location"`
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actorUID := c.GetString("authUID")

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	var dateTime time.Time
	if req.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.DateTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dateTime must be RFC3339"})
			return
		}
		dateTime = parsed
	}

	b, err := h.Bookings.Create(c.Request.Context(), actorUID, booking.CreateInput{
		StylistUID:  req.StylistUID,
		ServiceID:   req.ServiceID,
		ServiceName: req.ServiceName,
		DateTime:    dateTime,
		Price:       req.Price,
		ClientNotes: req.ClientNotes,
		Location:    req.Location,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "booking": b})
}

// UpdateStatusHandler handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	actorUID := c.GetString("authUID")
	id := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	b, err := h.Bookings.UpdateStatus(c.Request.Context(), actorUID, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "status": b.Status})
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actorUID := c.GetString("authUID")

	b, err := h.Bookings.Get(c.Request.Context(), actorUID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListUserBookingsHandler handles GET /api/bookings/user/:uid.
func (h *BookingHandler) ListUserBookingsHandler(c *gin.Context) {
	actorUID := c.GetString("authUID")

	bookings, err := h.Bookings.ListForUser(c.Request.Context(), actorUID, c.Param("uid"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
