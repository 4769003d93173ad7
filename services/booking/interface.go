package booking

import (
	"context"
	"time"

	"roomapp/models"
)

// CreateInput is the descriptive payload of a new booking. Everything here is
// immutable after creation; there is no amend operation.
type CreateInput struct {
	StylistUID  string
	ServiceID   string
	ServiceName string
	DateTime    time.Time
	Price       float64
	ClientNotes string
	Location    string
}

// Service drives the booking lifecycle: creation, status transitions with
// authorization, and party-scoped reads.
type Service interface {
	Create(ctx context.Context, clientUID string, in CreateInput) (*models.Booking, error)
	// UpdateStatus applies one lifecycle event. It validates the requested
	// value, checks the transition table against the current status, and
	// enforces the actor rules for the event before any write happens.
	UpdateStatus(ctx context.Context, actorUID, id, target string) (*models.Booking, error)
	Get(ctx context.Context, actorUID, id string) (*models.Booking, error)
	// ListForUser requires actorUID == uid.
	ListForUser(ctx context.Context, actorUID, uid string) ([]models.Booking, error)
}

// Notifier dispatches the best-effort push on booking creation.
type Notifier interface {
	BookingCreated(ctx context.Context, b *models.Booking) error
}

// ProfileDirectory resolves an actor's profile, used to check the staff role
// on accept.
type ProfileDirectory interface {
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
}
