package payment

import (
	"context"
	"errors"
	"testing"

	bookingRepo "roomapp/database/repository/booking"
	"roomapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type fakeRepo struct {
	bookings map[string]*models.Booking
	updates  []bookingRepo.PaymentUpdate
}

func newFakeRepo(bookings ...*models.Booking) *fakeRepo {
	r := &fakeRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) ListForUser(ctx context.Context, uid string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	return nil
}

func (r *fakeRepo) Accept(ctx context.Context, id, staffUID string) (*models.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.PaymentIntentID = intentID
	b.PaymentStatus = models.PaymentRequiresPayment
	return nil
}

func (r *fakeRepo) UpdatePayment(ctx context.Context, id string, upd bookingRepo.PaymentUpdate) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	r.updates = append(r.updates, upd)
	if upd.PaymentStatus != "" {
		b.PaymentStatus = upd.PaymentStatus
	}
	if upd.PaymentIntentID != "" {
		b.PaymentIntentID = upd.PaymentIntentID
	}
	if upd.FailureReason != "" {
		b.PaymentFailureReason = upd.FailureReason
	}
	if upd.RefundedAt != nil {
		b.RefundedAt = upd.RefundedAt
	}
	return nil
}

func (r *fakeRepo) Watch(ctx context.Context, onChange func([]models.Booking)) (func(), error) {
	return func() {}, nil
}

type fakeIntentClient struct {
	params *stripe.PaymentIntentParams
	intent *stripe.PaymentIntent
	err    error
}

func (c *fakeIntentClient) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	c.params = params
	if c.err != nil {
		return nil, c.err
	}
	return c.intent, nil
}

func testBooking() *models.Booking {
	return &models.Booking{
		ID:          "b1",
		ClientUID:   "client-1",
		StylistUID:  "s1",
		ServiceName: "Signature Cut",
		Price:       149.99,
		Status:      models.StatusAccepted,
	}
}

func TestCreateIntent(t *testing.T) {
	repo := newFakeRepo(testBooking())
	intents := &fakeIntentClient{intent: &stripe.PaymentIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret_abc",
	}}
	svc := &DefaultService{Repo: repo, Intents: intents, Logger: zap.NewNop()}

	secret, err := svc.CreateIntent(context.Background(), "client-1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_abc", secret)

	// Amount is in the smallest currency unit.
	assert.Equal(t, int64(14999), *intents.params.Amount)
	assert.Equal(t, "usd", *intents.params.Currency)
	assert.Equal(t, "b1", intents.params.Metadata["bookingId"])

	b := repo.bookings["b1"]
	assert.Equal(t, "pi_123", b.PaymentIntentID)
	assert.Equal(t, models.PaymentRequiresPayment, b.PaymentStatus)
}

func TestCreateIntentOwnerOnly(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := &DefaultService{Repo: repo, Intents: &fakeIntentClient{}, Logger: zap.NewNop()}

	// The stylist is a party but not the payer.
	_, err := svc.CreateIntent(context.Background(), "s1", "b1")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.CreateIntent(context.Background(), "someone-else", "b1")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	assert.Empty(t, repo.bookings["b1"].PaymentIntentID)
}

func TestCreateIntentValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := &DefaultService{Repo: repo, Intents: &fakeIntentClient{}, Logger: zap.NewNop()}

	_, err := svc.CreateIntent(context.Background(), "client-1", "")
	assert.ErrorIs(t, err, ErrMissingBookingID)

	_, err = svc.CreateIntent(context.Background(), "client-1", "missing")
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)
}

func TestCreateIntentStripeFailure(t *testing.T) {
	repo := newFakeRepo(testBooking())
	intents := &fakeIntentClient{err: errors.New("stripe down")}
	svc := &DefaultService{Repo: repo, Intents: intents, Logger: zap.NewNop()}

	_, err := svc.CreateIntent(context.Background(), "client-1", "b1")
	require.Error(t, err)
	assert.Empty(t, repo.bookings["b1"].PaymentIntentID, "no intent stamped on failure")
}

func TestGetStatus(t *testing.T) {
	b := testBooking()
	b.PaymentStatus = models.PaymentPaid
	b.PaymentIntentID = "pi_123"
	repo := newFakeRepo(b)
	svc := &DefaultService{Repo: repo, Logger: zap.NewNop()}

	st, err := svc.GetStatus(context.Background(), "s1", "b1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, st.PaymentStatus)
	assert.Equal(t, 149.99, st.Price)
	assert.Equal(t, "pi_123", st.PaymentIntentID)

	_, err = svc.GetStatus(context.Background(), "outsider", "b1")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestGetStatusDefaultsToPending(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := &DefaultService{Repo: repo, Logger: zap.NewNop()}

	st, err := svc.GetStatus(context.Background(), "client-1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "pending", st.PaymentStatus)
}
