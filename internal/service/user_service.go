package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrEmailTaken is returned when creating a user with an email that is
// already registered.
var ErrEmailTaken = errors.New("email already in use")

// UserService manages user records and their fitness profiles.
type UserService interface {
	Create(ctx context.Context, name, email string, role domain.Role) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.UserProfile) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates the user service.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, name, email string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if role == "" {
		role = domain.RoleUser
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	user := &domain.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return profile, nil
}

func (s *userService) UpsertProfile(ctx context.Context, profile *domain.UserProfile) error {
	if profile.UserID == primitive.NilObjectID {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if _, err := s.repo.GetByID(ctx, profile.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("looking up user: %w", err)
	}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}
