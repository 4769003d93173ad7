package middleware

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// FirebaseVerifier is the production TokenVerifier backed by Firebase Auth.
type FirebaseVerifier struct {
	Client *auth.Client
}

// Verify checks the ID token against Firebase and extracts the identity.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*AuthIdentity, error) {
	token, err := v.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		switch {
		case auth.IsIDTokenExpired(err):
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		case auth.IsIDTokenRevoked(err):
			return nil, fmt.Errorf("%w: %v", ErrTokenRevoked, err)
		case auth.IsIDTokenInvalid(err):
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		default:
			return nil, err
		}
	}

	identity := &AuthIdentity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if phone, ok := token.Claims["phone_number"].(string); ok {
		identity.Phone = phone
	}
	return identity, nil
}
