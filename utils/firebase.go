package utils

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients bundles the Firebase Auth and Cloud Messaging clients the
// service depends on. Both are created from the same app so they share
// credentials.
type FirebaseClients struct {
	Auth      *auth.Client
	Messaging *messaging.Client
}

// NewFirebaseClients initializes the Firebase app and returns the Auth and
// Messaging clients.
func NewFirebaseClients(ctx context.Context, credentialsFile string) (*FirebaseClients, error) {
	opt := option.WithCredentialsFile(credentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	return &FirebaseClients{Auth: authClient, Messaging: msgClient}, nil
}
