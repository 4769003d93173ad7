package booking

import (
	"context"
	"errors"

	bookingRepo "roomapp/database/repository/booking"
	"roomapp/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultService is the production implementation of Service.
type DefaultService struct {
	Repo     bookingRepo.Repository
	Profiles ProfileDirectory
	Notifier Notifier
	Logger   *zap.Logger
}

// Create persists a new pending booking for the customer and notifies the
// candidate stylist. The notification is fire-and-forget: a push failure is
// logged and never fails the creation.
func (s *DefaultService) Create(ctx context.Context, clientUID string, in CreateInput) (*models.Booking, error) {
	if in.StylistUID == "" || in.ServiceID == "" || in.DateTime.IsZero() {
		return nil, ErrMissingFields
	}

	b := &models.Booking{
		ID:          uuid.New().String(),
		ClientUID:   clientUID,
		StylistUID:  in.StylistUID,
		ServiceID:   in.ServiceID,
		ServiceName: in.ServiceName,
		DateTime:    in.DateTime,
		Price:       in.Price,
		ClientNotes: in.ClientNotes,
		Location:    in.Location,
		Status:      models.StatusPending,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	if err := s.Notifier.BookingCreated(ctx, b); err != nil {
		s.Logger.Warn("booking notification failed (non-critical)",
			zap.String("bookingId", b.ID),
			zap.String("stylistUid", b.StylistUID),
			zap.Error(err))
	}

	return b, nil
}

// UpdateStatus applies one lifecycle event on behalf of actorUID.
func (s *DefaultService) UpdateStatus(ctx context.Context, actorUID, id, target string) (*models.Booking, error) {
	if !ValidStatus(target) {
		return nil, ErrInvalidStatus
	}

	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(b.Status, target) {
		return nil, ErrIllegalTransition
	}

	// Accept is open to any staff member, first writer wins; every other
	// event is restricted to the booking's parties.
	if target == models.StatusAccepted {
		return s.accept(ctx, actorUID, b)
	}

	if !b.IsParty(actorUID) {
		return nil, ErrNotAuthorized
	}

	switch target {
	case models.StatusCancelled:
		// Cancel is the customer's event.
		if actorUID != b.ClientUID {
			return nil, ErrNotAuthorized
		}
	case models.StatusRejected:
		// Reject is the staff side of a pending booking.
		if actorUID == b.ClientUID {
			return nil, ErrNotAuthorized
		}
	case models.StatusInProgress, models.StatusCompleted:
		// Arrive/start and complete belong to the assigned staff member.
		if actorUID != b.AssignedStaffID {
			return nil, ErrNotAuthorized
		}
	}

	if err := s.Repo.UpdateStatus(ctx, id, b.Status, target); err != nil {
		if errors.Is(err, bookingRepo.ErrPreconditionFailed) {
			return nil, ErrIllegalTransition
		}
		return nil, err
	}

	b.Status = target
	return b, nil
}

// accept binds the actor as the booking's staff member via a conditional
// write. The persistence layer guarantees first-writer-wins; a lost race
// surfaces as ErrAcceptConflict.
func (s *DefaultService) accept(ctx context.Context, actorUID string, b *models.Booking) (*models.Booking, error) {
	if actorUID == b.ClientUID {
		return nil, ErrNotAuthorized
	}
	profile, err := s.Profiles.GetByUID(ctx, actorUID)
	if err != nil || profile.Role != models.RoleStaff {
		return nil, ErrNotAuthorized
	}

	accepted, err := s.Repo.Accept(ctx, b.ID, actorUID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrPreconditionFailed) {
			return nil, ErrAcceptConflict
		}
		return nil, err
	}
	return accepted, nil
}

// Get returns a booking to one of its parties.
func (s *DefaultService) Get(ctx context.Context, actorUID, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actorUID) {
		return nil, ErrNotAuthorized
	}
	return b, nil
}

// ListForUser returns a user's bookings, newest first. Callers may only list
// their own.
func (s *DefaultService) ListForUser(ctx context.Context, actorUID, uid string) ([]models.Booking, error) {
	if actorUID != uid {
		return nil, ErrNotAuthorized
	}
	return s.Repo.ListForUser(ctx, uid)
}
