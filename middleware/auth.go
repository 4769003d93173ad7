package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by FirebaseAuth for downstream handlers.
const (
	CtxAuthUID  = "authUID"
	CtxIdentity = "identity"
)

// Token verification failures, mapped to 401 sub-reasons.
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenRevoked   = errors.New("token has been revoked")
	ErrTokenMalformed = errors.New("token is malformed or invalid")
)

// AuthIdentity is the verified identity attached to a request.
type AuthIdentity struct {
	UID   string
	Email string
	Phone string
}

// TokenVerifier validates a bearer identity token. The production
// implementation wraps the Firebase Auth client; tests substitute a fake.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*AuthIdentity, error)
}

// FirebaseAuth verifies the Authorization bearer token on every request and
// attaches the decoded identity to the context. All non-webhook routes sit
// behind this.
func FirebaseAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Missing or invalid Authorization header. Format: Bearer <token>",
			})
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		identity, err := verifier.Verify(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Token Verification Failed",
				"message": tokenFailureMessage(err),
			})
			return
		}

		c.Set(CtxAuthUID, identity.UID)
		c.Set(CtxIdentity, identity)
		c.Next()
	}
}

func tokenFailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, ErrTokenRevoked):
		return "Token has been revoked"
	case errors.Is(err, ErrTokenMalformed):
		return "Token is malformed or invalid"
	default:
		return "Invalid token"
	}
}
