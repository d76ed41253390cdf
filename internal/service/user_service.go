package service

import (
	"context"
	"fmt"

	"itemvault/internal/models"
	"itemvault/internal/repository"
)

// UserService implements self-service profile reads and updates.
type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

// UpdateProfile applies only the fields present in the patch. An empty patch
// is a no-op returning the caller's record unchanged. An email change that
// collides with another account fails with ErrEmailTaken.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, patch UserPatch) (*models.User, error) {
	if patch.Email == nil && patch.FullName == nil {
		return user, nil
	}

	if patch.Email != nil && *patch.Email != user.Email {
		other, err := s.users.GetByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrEmailTaken
		}
	}

	if err := s.users.Update(ctx, user.ID, repository.UserPatch{
		Email:    patch.Email,
		FullName: patch.FullName,
	}); err != nil {
		return nil, err
	}

	updated, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("user id=%d vanished during update", user.ID)
	}
	return updated, nil
}
