package service

import (
	"context"
	"fmt"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository"
)

var (
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrProfileNotFound = repository.ErrProfileNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindProfile(ctx context.Context, userID uint) (domain.Profile, error)
	AddPoints(ctx context.Context, userID uint, points int) (domain.Profile, error)
	UpdateDisplayName(ctx context.Context, userID uint, displayName string) (domain.Profile, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (domain.Profile, error) {
	profile, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.FindProfile -> %w", err)
	}

	return profile, nil
}

func (s *UserService) UpdateDisplayName(ctx context.Context, userID uint, displayName string) (domain.Profile, error) {
	profile, err := s.repo.UpdateDisplayName(ctx, userID, displayName)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.UpdateDisplayName -> %w", err)
	}

	return profile, nil
}
