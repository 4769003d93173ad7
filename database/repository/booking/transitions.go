package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"roomapp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateStatus moves a booking from one status to another. The filter carries
// the expected current status so a concurrent transition on the same document
// surfaces as ErrPreconditionFailed instead of a silent overwrite.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing booking from a lost race.
		if exists, err := r.exists(ctx, id); err == nil && !exists {
			return ErrNotFound
		}
		return ErrPreconditionFailed
	}
	return nil
}

// Accept is the first-writer-wins compare-and-swap for the accept transition:
// the booking must still be pending with no assigned staff.
func (r *MongoBookingRepo) Accept(ctx context.Context, id, staffUID string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": models.StatusPending,
		"assigned_staff_id": bson.M{"$in": bson.A{nil, ""}},
	}
	update := bson.M{"$set": bson.M{
		"status":            models.StatusAccepted,
		"assigned_staff_id": staffUID,
		"updated_at":        time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b)
	if err == mongo.ErrNoDocuments {
		if exists, err := r.exists(ctx, id); err == nil && !exists {
			return nil, ErrNotFound
		}
		return nil, ErrPreconditionFailed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to accept booking %s: %w", id, err)
	}
	return &b, nil
}

// SetPaymentIntent stamps the payment-intent reference on a booking and moves
// its payment axis to requires_payment.
func (r *MongoBookingRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"payment_intent_id": intentID,
		"payment_status":    models.PaymentRequiresPayment,
		"updated_at":        time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to stamp payment intent on booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePayment applies a webhook-driven settlement to a booking. The write
// sets terminal values unconditionally, which keeps event replays idempotent.
func (r *MongoBookingRepo) UpdatePayment(ctx context.Context, id string, upd PaymentUpdate) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if upd.PaymentStatus != "" {
		set["payment_status"] = upd.PaymentStatus
	}
	if upd.PaymentIntentID != "" {
		set["payment_intent_id"] = upd.PaymentIntentID
	}
	if upd.FailureReason != "" {
		set["payment_failure_reason"] = upd.FailureReason
	}
	if upd.RefundedAt != nil {
		set["refunded_at"] = upd.RefundedAt
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update payment on booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) exists(ctx context.Context, id string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
