package handlers

import (
	"errors"
	"net/http"

	bookingRepo "roomapp/database/repository/booking"
	userRepo "roomapp/database/repository/user"
	"roomapp/services/booking"
	"roomapp/services/payment"
	"roomapp/services/user"
	"roomapp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps domain errors onto the HTTP error taxonomy:
// validation 400, authorization 403, not-found 404, transition/accept
// conflicts 409, everything else a masked 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrMissingFields),
		errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, payment.ErrMissingBookingID),
		errors.Is(err, user.ErrNameRequired),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrTokenRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, booking.ErrNotAuthorized),
		errors.Is(err, payment.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, bookingRepo.ErrNotFound),
		errors.Is(err, userRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, booking.ErrIllegalTransition),
		errors.Is(err, booking.ErrAcceptConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		getLogger(c).Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Server error", err.Error())
	}
}
