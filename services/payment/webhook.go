package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "roomapp/database/repository/booking"
	"roomapp/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// HandleWebhook verifies and applies one settlement event. Only a signature
// failure is returned to the caller (400); everything after a valid signature
// is logged and masked so Stripe sees a 200 and stops redelivering.
func (s *DefaultService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, s.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}

	// Stripe redelivers events; a replayed event id is acknowledged without
	// reprocessing. The settlement writes are terminal-value updates anyway,
	// so even a dedup miss cannot corrupt state.
	if s.Dedup != nil && !s.Dedup.FirstDelivery(ctx, event.ID) {
		s.Logger.Debug("skipping replayed webhook event", zap.String("eventId", event.ID))
		return nil
	}

	if err := s.processEvent(ctx, event); err != nil {
		s.Logger.Error("webhook event processing failed (masked)",
			zap.String("eventId", event.ID),
			zap.String("type", string(event.Type)),
			zap.Error(err))
	}
	return nil
}

func (s *DefaultService) processEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "payment_intent.succeeded":
		intent, err := parseIntent(event)
		if err != nil {
			return err
		}
		return s.Repo.UpdatePayment(ctx, intent.Metadata["bookingId"], bookingRepo.PaymentUpdate{
			PaymentStatus:   models.PaymentPaid,
			PaymentIntentID: intent.ID,
		})

	case "payment_intent.payment_failed":
		intent, err := parseIntent(event)
		if err != nil {
			return err
		}
		reason := "Unknown"
		if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
			reason = intent.LastPaymentError.Msg
		}
		return s.Repo.UpdatePayment(ctx, intent.Metadata["bookingId"], bookingRepo.PaymentUpdate{
			PaymentStatus: models.PaymentFailed,
			FailureReason: reason,
		})

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return fmt.Errorf("failed to parse charge event: %w", err)
		}
		now := time.Now()
		return s.Repo.UpdatePayment(ctx, charge.Metadata["bookingId"], bookingRepo.PaymentUpdate{
			PaymentStatus: models.PaymentRefunded,
			RefundedAt:    &now,
		})
	}

	// Unhandled event types are acknowledged untouched.
	return nil
}

func parseIntent(event stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse payment intent event: %w", err)
	}
	return &intent, nil
}
