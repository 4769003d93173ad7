package handlers

import (
	"net/http"

	"roomapp/middleware"
	"roomapp/models"
	"roomapp/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes profile and device management over HTTP. Identity
// always comes from the verified token, never from the request body.
type AuthHandler struct {
	Users  user.Service
	Logger *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc user.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: svc, Logger: logger}
}

func identityFrom(c *gin.Context) *middleware.AuthIdentity {
	if v, ok := c.Get(middleware.CtxIdentity); ok {
		if id, ok := v.(*middleware.AuthIdentity); ok {
			return id
		}
	}
	return &middleware.AuthIdentity{UID: c.GetString("authUID")}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	identity := identityFrom(c)

	var req struct {
		Name     string `json:"name"`
		Role     string `json:"role"`
		Bio      string `json:"bio"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	profile, err := h.Users.Register(c.Request.Context(), identity.UID, user.RegisterInput{
		Name:     req.Name,
		Role:     req.Role,
		Bio:      req.Bio,
		Location: req.Location,
		Email:    identity.Email,
		Phone:    identity.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": profile})
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	profile, err := h.Users.Me(c.Request.Context(), c.GetString("authUID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// UpdateProfileHandler handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	profile, err := h.Users.UpdateProfile(c.Request.Context(), c.GetString("authUID"), upd)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": profile})
}

type deviceTokenRequest struct {
	Token string `json:"token"`
}

// RegisterDeviceHandler handles POST /api/auth/device-token.
func (h *AuthHandler) RegisterDeviceHandler(c *gin.Context) {
	var req deviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.Users.RegisterDevice(c.Request.Context(), c.GetString("authUID"), req.Token); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UnregisterDeviceHandler handles DELETE /api/auth/device-token.
func (h *AuthHandler) UnregisterDeviceHandler(c *gin.Context) {
	var req deviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.Users.UnregisterDevice(c.Request.Context(), c.GetString("authUID"), req.Token); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
