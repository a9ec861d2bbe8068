package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/models"
)

type userService struct {
	userRepo db.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo db.UserRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

// GetOrCreateProfile returns the stored profile, creating a free-tier
// default on first contact.
func (s *userService) GetOrCreateProfile(ctx context.Context, identity Identity) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, identity.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	user = &models.User{
		ID:           identity.UID,
		Email:        identity.Email,
		DisplayName:  identity.DisplayName,
		PhotoURL:     identity.PhotoURL,
		Role:         models.RoleUser,
		Plan:         models.PlanFree,
		Status:       models.StatusActive,
		MessageQuota: models.FreeMessageQuota,
		ImageQuota:   models.FreeImageQuota,
		Settings:     map[string]interface{}{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}
	s.logger.Info("created default user profile", zap.String("userID", identity.UID))
	return user, nil
}

// UpdateSettings merges the given keys into the user's settings blob and
// returns the updated profile.
func (s *userService) UpdateSettings(ctx context.Context, uid string, settings map[string]interface{}) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	if user.Settings == nil {
		user.Settings = map[string]interface{}{}
	}
	for k, v := range settings {
		user.Settings[k] = v
	}
	if err := s.userRepo.ApplyUpdates(ctx, uid, map[string]interface{}{"settings": user.Settings}); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return user, nil
}
