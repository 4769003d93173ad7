package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomapp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository errors. Services translate these into their own domain errors.
var (
	// ErrNotFound indicates the booking id matched no document.
	ErrNotFound = errors.New("booking not found")
	// ErrPreconditionFailed indicates a conditional write found the document
	// in a different state than required (lost race or stale read).
	ErrPreconditionFailed = errors.New("booking precondition failed")
)

// PaymentUpdate carries the payment fields a webhook settlement may stamp
// onto a booking. Empty/nil fields are left untouched.
type PaymentUpdate struct {
	PaymentStatus   string
	PaymentIntentID string
	FailureReason   string
	RefundedAt      *time.Time
}

// Repository defines persistence operations on booking records. Each booking
// document is the unit of consistency; every conditional write is a single
// atomic document update.
type Repository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListForUser returns every booking where uid is the client or the
	// stylist, sorted by dateTime descending.
	ListForUser(ctx context.Context, uid string) ([]models.Booking, error)
	// UpdateStatus sets the status only if the document still carries the
	// expected current status; otherwise ErrPreconditionFailed.
	UpdateStatus(ctx context.Context, id, from, to string) error
	// Accept binds staffUID and moves pending -> accepted, but only while the
	// booking is still pending and unassigned. First writer wins; a losing
	// writer gets ErrPreconditionFailed, never a silent overwrite.
	Accept(ctx context.Context, id, staffUID string) (*models.Booking, error)
	// SetPaymentIntent stamps the payment-intent reference and moves the
	// payment axis to requires_payment.
	SetPaymentIntent(ctx context.Context, id, intentID string) error
	UpdatePayment(ctx context.Context, id string, upd PaymentUpdate) error
	// Watch invokes onChange with the full current collection contents on
	// every change until the returned cancel function is called.
	Watch(ctx context.Context, onChange func([]models.Booking)) (func(), error)
}

// MongoBookingRepo implements Repository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a booking repository over the given database.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_uid", Value: 1}, {Key: "date_time", Value: -1}}},
		{Keys: bson.D{{Key: "stylist_uid", Value: 1}, {Key: "date_time", Value: -1}}},
		{Keys: bson.D{{Key: "payment_intent_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
