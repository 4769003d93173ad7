package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	bookingRepo "roomapp/database/repository/booking"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

var (
	// ErrMissingBookingID indicates a create-intent request without a booking id.
	ErrMissingBookingID = errors.New("bookingId is required")
	// ErrNotAuthorized indicates the actor is not allowed to touch the
	// booking's payment state.
	ErrNotAuthorized = errors.New("not authorized for this booking's payment")
	// ErrBadSignature indicates the webhook payload failed signature
	// verification and was discarded without mutation.
	ErrBadSignature = errors.New("webhook signature verification failed")
)

// Status is the payment view of a booking.
type Status struct {
	PaymentStatus   string  `json:"paymentStatus"`
	Price           float64 `json:"price"`
	PaymentIntentID string  `json:"paymentIntentId,omitempty"`
}

// Service drives the payment sub-lifecycle: intent creation by the booking
// owner and settlement transitions driven by signed webhook events.
type Service interface {
	CreateIntent(ctx context.Context, actorUID, bookingID string) (clientSecret string, err error)
	// HandleWebhook verifies the event signature, then applies the
	// settlement. Processing failures after a valid signature are swallowed
	// (logged, not returned) so the payment collaborator is not driven to
	// retry indefinitely.
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
	GetStatus(ctx context.Context, actorUID, bookingID string) (*Status, error)
}

// IntentClient creates payment intents at the payment collaborator.
type IntentClient interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeIntentClient is the live IntentClient backed by the Stripe SDK.
type StripeIntentClient struct{}

func (StripeIntentClient) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

// Deduper answers whether a webhook event id is seen for the first time.
type Deduper interface {
	FirstDelivery(ctx context.Context, eventID string) bool
}

// DefaultService is the production implementation of Service.
type DefaultService struct {
	Repo          bookingRepo.Repository
	Intents       IntentClient
	Dedup         Deduper
	WebhookSecret string
	Logger        *zap.Logger
}

// CreateIntent creates a payment intent for a booking the actor owns, stamps
// the booking with the intent reference, and returns the client secret for
// client-side confirmation.
func (s *DefaultService) CreateIntent(ctx context.Context, actorUID, bookingID string) (string, error) {
	if bookingID == "" {
		return "", ErrMissingBookingID
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if actorUID != b.ClientUID {
		return "", ErrNotAuthorized
	}

	amount := int64(math.Round(b.Price * 100))
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Metadata: map[string]string{
			"bookingId":   bookingID,
			"clientUid":   actorUID,
			"serviceName": b.ServiceName,
		},
	}

	intent, err := s.Intents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.Repo.SetPaymentIntent(ctx, bookingID, intent.ID); err != nil {
		return "", err
	}

	return intent.ClientSecret, nil
}

// GetStatus returns the payment view of a booking to one of its parties.
// A booking that never entered the payment flow reads as "pending".
func (s *DefaultService) GetStatus(ctx context.Context, actorUID, bookingID string) (*Status, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actorUID) {
		return nil, ErrNotAuthorized
	}

	st := &Status{
		PaymentStatus:   b.PaymentStatus,
		Price:           b.Price,
		PaymentIntentID: b.PaymentIntentID,
	}
	if st.PaymentStatus == "" {
		st.PaymentStatus = "pending"
	}
	return st, nil
}
