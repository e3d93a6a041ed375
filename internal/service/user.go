package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/compassreads/compass-server/internal/domain"
	domainerrors "github.com/compassreads/compass-server/internal/errors"
	"github.com/compassreads/compass-server/internal/store"
)

// UserDirectory is the slice of the catalog store the user service needs.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, bio, avatar string) error
}

// UserService handles profile listing and editing.
type UserService struct {
	users  UserDirectory
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(users UserDirectory, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// UpdateUserRequest contains the editable profile fields.
type UpdateUserRequest struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// ListUsers returns public projections of every user.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

// GetUser returns the public projection of one user.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.Profile, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	profile := user.Profile()
	return &profile, nil
}

// UpdateUser replaces a user's profile fields. Name and bio are required;
// avatar may be cleared.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) error {
	if req.Name == "" || req.Bio == "" {
		return domainerrors.Validation("Name and bio are required.")
	}

	if err := s.users.UpdateProfile(ctx, id, req.Name, req.Bio, req.Avatar); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user profile updated", "user_id", id)
	return nil
}
