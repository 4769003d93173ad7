package notification

import (
	"context"
	"fmt"

	userRepo "roomapp/database/repository/user"
	"roomapp/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Service dispatches FCM pushes for booking events.
type Service interface {
	// BookingCreated notifies the candidate stylist's registered devices of a
	// new booking request. Best effort: callers must never fail their primary
	// operation on an error from here.
	BookingCreated(ctx context.Context, b *models.Booking) error
}

// Messenger is the slice of the FCM client the service uses.
type Messenger interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// DefaultService is the production implementation backed by FCM.
type DefaultService struct {
	Users     userRepo.Repository
	Messenger Messenger
	Logger    *zap.Logger
}

// BookingCreated sends the new-booking push to every device token registered
// for the stylist, then prunes tokens FCM reports as permanently invalid.
func (s *DefaultService) BookingCreated(ctx context.Context, b *models.Booking) error {
	stylist, err := s.Users.GetByUID(ctx, b.StylistUID)
	if err != nil {
		return fmt.Errorf("could not find stylist %s: %w", b.StylistUID, err)
	}

	tokens := stylist.DeviceTokens
	if len(tokens) == 0 {
		s.Logger.Debug("no device tokens for stylist", zap.String("stylistUid", b.StylistUID))
		return nil
	}

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: "New booking request",
			Body:  fmt.Sprintf("You have a booking for %s at %s", b.ServiceName, b.DateTime.Format("Jan 2, 3:04 PM")),
		},
		Data: map[string]string{
			"bookingId": b.ID,
			"type":      "NEW_BOOKING",
		},
	}

	resp, err := s.Messenger.SendEachForMulticast(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM multicast: %w", err)
	}

	s.Logger.Info("booking notification sent",
		zap.String("stylistUid", b.StylistUID),
		zap.Int("success", resp.SuccessCount),
		zap.Int("failure", resp.FailureCount))

	if resp.FailureCount > 0 {
		s.cleanupInvalidTokens(ctx, b.StylistUID, tokens, resp)
	}
	return nil
}

// isInvalidToken reports whether an FCM send error means the token is dead
// and should be pruned rather than retried.
var isInvalidToken = func(err error) bool {
	return messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err)
}

// cleanupInvalidTokens removes tokens FCM rejected as unregistered. Cleanup
// is a follow-up effect of the send, never retried and never surfaced.
func (s *DefaultService) cleanupInvalidTokens(ctx context.Context, uid string, tokens []string, resp *messaging.BatchResponse) {
	var invalid []string
	for i, r := range resp.Responses {
		if r.Success || r.Error == nil {
			continue
		}
		if isInvalidToken(r.Error) {
			invalid = append(invalid, tokens[i])
		}
	}
	if len(invalid) == 0 {
		return
	}

	if err := s.Users.RemoveDeviceTokens(ctx, uid, invalid); err != nil {
		s.Logger.Warn("failed to prune invalid device tokens",
			zap.String("uid", uid), zap.Error(err))
		return
	}
	s.Logger.Info("pruned invalid device tokens",
		zap.String("uid", uid), zap.Int("count", len(invalid)))
}
