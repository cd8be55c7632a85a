package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository"
)

var (
	ErrGarageItemNotFound = repository.ErrGarageItemNotFound
	ErrAlreadyInGarage    = repository.ErrAlreadyInGarage
)

type GarageRepository interface {
	Create(ctx context.Context, item domain.GarageItem) (domain.GarageItem, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.GarageItem, error)
	FindByID(ctx context.Context, id uint) (domain.GarageItem, error)
	UpdateStatus(ctx context.Context, id uint, status domain.GarageStatus) (domain.GarageItem, error)
	UpdateDetails(ctx context.Context, id uint, nickname, photoURL string, mileageKM int) (domain.GarageItem, error)
	Delete(ctx context.Context, id uint) error
}

type GaragePointsAwarder interface {
	AddPoints(ctx context.Context, userID uint, points int) (domain.Profile, error)
}

type GarageScooterFinder interface {
	FindScooterByID(ctx context.Context, id uint) (domain.ScooterModel, error)
}

type GarageService struct {
	repo     GarageRepository
	scooters GarageScooterFinder
	points   GaragePointsAwarder
}

func NewGarageService(repo GarageRepository, scooters GarageScooterFinder, points GaragePointsAwarder) *GarageService {
	return &GarageService{
		repo:     repo,
		scooters: scooters,
		points:   points,
	}
}

func (s *GarageService) GetGarage(ctx context.Context, userID uint) ([]domain.GarageItem, error) {
	items, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}
	return items, nil
}

// AddScooter puts a scooter in the user's garage and awards the garage
// bonus. The bonus is a separate write; when it fails the garage entry
// stands and the miss is only logged.
func (s *GarageService) AddScooter(ctx context.Context, userID, scooterModelID uint, status domain.GarageStatus) (domain.GarageItem, error) {
	if !status.IsValid() {
		status = domain.GarageFavorited
	}

	if _, err := s.scooters.FindScooterByID(ctx, scooterModelID); err != nil {
		return domain.GarageItem{}, fmt.Errorf("s.scooters.FindScooterByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.GarageItem{
		UserID:         userID,
		ScooterModelID: scooterModelID,
		Status:         status,
	})
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.award(ctx, userID, domain.PointsGarageAdd)
	return created, nil
}

// Promote flips a favorited scooter to owned, leaving nickname, photo and
// mileage untouched, and awards the promotion bonus.
func (s *GarageService) Promote(ctx context.Context, userID, itemID uint) (domain.GarageItem, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return domain.GarageItem{}, err
	}
	if item.Status == domain.GarageOwned {
		return item, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, itemID, domain.GarageOwned)
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	s.award(ctx, userID, domain.PointsPromote)
	return updated, nil
}

// Demote flips an owned scooter back to favorited. Details survive; no
// points move in this direction.
func (s *GarageService) Demote(ctx context.Context, userID, itemID uint) (domain.GarageItem, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return domain.GarageItem{}, err
	}
	if item.Status == domain.GarageFavorited {
		return item, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, itemID, domain.GarageFavorited)
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}
	return updated, nil
}

func (s *GarageService) UpdateDetails(ctx context.Context, userID, itemID uint, nickname, photoURL string, mileageKM int) (domain.GarageItem, error) {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return domain.GarageItem{}, err
	}

	updated, err := s.repo.UpdateDetails(ctx, itemID, nickname, photoURL, mileageKM)
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("s.repo.UpdateDetails -> %w", err)
	}
	return updated, nil
}

func (s *GarageService) RemoveScooter(ctx context.Context, userID, itemID uint) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	return nil
}

// Membership reports whether a scooter is in the user's garage and under
// which status.
func (s *GarageService) Membership(ctx context.Context, userID, scooterModelID uint) (domain.GarageMembership, error) {
	items, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.GarageMembership{}, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}
	return domain.Membership(items, scooterModelID), nil
}

// ownedItem fetches a garage item and checks it belongs to the user.
// Someone else's item reads as not found.
func (s *GarageService) ownedItem(ctx context.Context, userID, itemID uint) (domain.GarageItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if item.UserID != userID {
		return domain.GarageItem{}, ErrGarageItemNotFound
	}
	return item, nil
}

func (s *GarageService) award(ctx context.Context, userID uint, points int) {
	if _, err := s.points.AddPoints(ctx, userID, points); err != nil {
		zap.L().Warn("points award failed",
			zap.Uint("user_id", userID),
			zap.Int("points", points),
			zap.Error(err))
	}
}
