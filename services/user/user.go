package user

import (
	"context"
	"errors"

	userRepo "roomapp/database/repository/user"
	"roomapp/models"

	"go.uber.org/zap"
)

var (
	// ErrNameRequired indicates a registration without a name.
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidRole indicates a role outside {customer, staff}.
	ErrInvalidRole = errors.New("role must be customer or staff")
	// ErrTokenRequired indicates a device registration without a token.
	ErrTokenRequired = errors.New("device token is required")
)

// RegisterInput carries the profile fields of a registration. Email and phone
// come from the verified identity token, never from the request body.
type RegisterInput struct {
	Name     string
	Role     string
	Bio      string
	Location string
	Email    string
	Phone    string
}

// Service manages user profiles and their registered notification devices.
type Service interface {
	Register(ctx context.Context, uid string, in RegisterInput) (*models.UserProfile, error)
	Me(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.UserProfile, error)
	RegisterDevice(ctx context.Context, uid, token string) error
	UnregisterDevice(ctx context.Context, uid, token string) error
}

// DefaultService is the production implementation of Service.
type DefaultService struct {
	Repo   userRepo.Repository
	Logger *zap.Logger
}

// Register creates or merges the profile document for uid. The role defaults
// to customer and is not meant to change afterwards; re-registration keeps
// the original createdAt.
func (s *DefaultService) Register(ctx context.Context, uid string, in RegisterInput) (*models.UserProfile, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleStaff {
		return nil, ErrInvalidRole
	}

	profile := &models.UserProfile{
		UID:      uid,
		Name:     in.Name,
		Role:     role,
		Bio:      in.Bio,
		Email:    in.Email,
		Phone:    in.Phone,
		Location: in.Location,
	}
	return s.Repo.Upsert(ctx, profile)
}

// Me returns the profile for uid.
func (s *DefaultService) Me(ctx context.Context, uid string) (*models.UserProfile, error) {
	return s.Repo.GetByUID(ctx, uid)
}

// UpdateProfile applies a partial profile update and returns the fresh
// document.
func (s *DefaultService) UpdateProfile(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.UserProfile, error) {
	return s.Repo.UpdateProfile(ctx, uid, upd)
}

// RegisterDevice adds a device token to the user's set.
func (s *DefaultService) RegisterDevice(ctx context.Context, uid, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	return s.Repo.AddDeviceToken(ctx, uid, token)
}

// UnregisterDevice removes a device token, typically on sign-out.
func (s *DefaultService) UnregisterDevice(ctx context.Context, uid, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	return s.Repo.RemoveDeviceTokens(ctx, uid, []string{token})
}
