package bookingRepo

import (
	"context"
	"fmt"

	"roomapp/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Watch opens a change stream on the bookings collection and re-delivers the
// full current result set to onChange after every change event. Consumers
// recompute their derived state from scratch on each delivery; no incremental
// patching happens here.
func (r *MongoBookingRepo) Watch(ctx context.Context, onChange func([]models.Booking)) (func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.coll.Watch(streamCtx, mongo.Pipeline{}, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open booking change stream: %w", err)
	}

	// Deliver the initial snapshot so a fresh subscriber starts from the
	// current state rather than the next change.
	initial, err := r.listAll(streamCtx)
	if err != nil {
		stream.Close(context.Background())
		cancel()
		return nil, err
	}
	onChange(initial)

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			bookings, err := r.listAll(streamCtx)
			if err != nil {
				continue
			}
			onChange(bookings)
		}
	}()

	return cancel, nil
}
