package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"roomapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the same way stripe-cli does:
// t=<unix>,v1=<hmac_sha256(secret, "<unix>.<payload>")>.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

type memDeduper struct {
	seen map[string]bool
}

func (d *memDeduper) FirstDelivery(ctx context.Context, eventID string) bool {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	if d.seen[eventID] {
		return false
	}
	d.seen[eventID] = true
	return true
}

func newWebhookService(repo *fakeRepo) *DefaultService {
	return &DefaultService{
		Repo:          repo,
		Dedup:         &memDeduper{},
		WebhookSecret: testWebhookSecret,
		Logger:        zap.NewNop(),
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := newWebhookService(repo)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","metadata":{"bookingId":"b1"}}}}`)

	err := svc.HandleWebhook(context.Background(), payload, "t=123,v1=deadbeef")
	assert.ErrorIs(t, err, ErrBadSignature)

	err = svc.HandleWebhook(context.Background(), payload, signPayload(payload, "whsec_wrong"))
	assert.ErrorIs(t, err, ErrBadSignature)

	assert.Empty(t, repo.updates, "unverified payloads must not touch state")
}

func TestWebhookPaymentSucceeded(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := newWebhookService(repo)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","metadata":{"bookingId":"b1"}}}}`)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	b := repo.bookings["b1"]
	assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
	assert.Equal(t, "pi_1", b.PaymentIntentID)
	assert.Equal(t, models.StatusAccepted, b.Status, "payment must not move the booking status")
}

func TestWebhookReplayedEventIsSkipped(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := newWebhookService(repo)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","metadata":{"bookingId":"b1"}}}}`)

	for i := 0; i < 3; i++ {
		err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
		require.NoError(t, err)
	}

	assert.Len(t, repo.updates, 1, "redelivered events apply once")
	assert.Equal(t, models.PaymentPaid, repo.bookings["b1"].PaymentStatus)
}

func TestWebhookPaymentFailed(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := newWebhookService(repo)
	payload := []byte(`{"id":"evt_2","type":"payment_intent.payment_failed","data":{"object":{"id":"pi_1","metadata":{"bookingId":"b1"},"last_payment_error":{"message":"Your card was declined."}}}}`)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	b := repo.bookings["b1"]
	assert.Equal(t, models.PaymentFailed, b.PaymentStatus)
	assert.Equal(t, "Your card was declined.", b.PaymentFailureReason)
}

func TestWebhookPaymentFailedWithoutReason(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := newWebhookService(repo)
	payload := []byte(`{"id":"evt_3","type":"payment_intent.payment_failed","data":{"object":{"id":"pi_1","metadata":{"bookingId":"b1"}}}}`)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, "Unknown", repo.bookings["b1"].PaymentFailureReason)
}

func TestWebhookChargeRefunded(t *testing.T) {
	b := testBooking()
	b.PaymentStatus = models.PaymentPaid
	repo := newFakeRepo(b)
	svc := newWebhookService(repo)
	payload := []byte(`{"id":"evt_4","type":"charge.refunded","data":{"object":{"id":"ch_1","metadata":{"bookingId":"b1"}}}}`)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentRefunded, b.PaymentStatus)
	require.NotNil(t, b.RefundedAt)
	assert.WithinDuration(t, time.Now(), *b.RefundedAt, time.Minute)
}

func TestWebhookUnknownEventAcknowledged(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := newWebhookService(repo)
	payload := []byte(`{"id":"evt_5","type":"customer.created","data":{"object":{}}}`)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Empty(t, repo.updates)
}

func TestWebhookUnknownBookingIsMasked(t *testing.T) {
	repo := newFakeRepo()
	svc := newWebhookService(repo)
	payload := []byte(`{"id":"evt_6","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","metadata":{"bookingId":"ghost"}}}}`)

	// A valid signature always gets a 200 so Stripe stops redelivering.
	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	assert.NoError(t, err)
}
