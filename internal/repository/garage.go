package repository

import (
	"context"
	"fmt"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository/dao"
)

var (
	ErrGarageItemNotFound = dao.ErrGarageItemNotFound
	ErrAlreadyInGarage    = dao.ErrAlreadyInGarage
)

type GarageDAO interface {
	Insert(ctx context.Context, item dao.GarageItem) (dao.GarageItem, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.GarageItem, error)
	FindByID(ctx context.Context, id uint) (dao.GarageItem, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dao.GarageItem, error)
	UpdateDetails(ctx context.Context, id uint, nickname, photoURL string, mileageKM int) (dao.GarageItem, error)
	Delete(ctx context.Context, id uint) error
}

type GarageRepository struct {
	dao GarageDAO
}

func NewGarageRepository(dao GarageDAO) *GarageRepository {
	return &GarageRepository{
		dao: dao,
	}
}

func (r *GarageRepository) Create(ctx context.Context, item domain.GarageItem) (domain.GarageItem, error) {
	created, err := r.dao.Insert(ctx, dao.GarageItem{
		UserID:         item.UserID,
		ScooterModelID: item.ScooterModelID,
		Status:         string(item.Status),
		Nickname:       item.Nickname,
		PhotoURL:       item.PhotoURL,
		MileageKM:      item.MileageKM,
	})
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GarageRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.GarageItem, error) {
	items, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	out := make([]domain.GarageItem, len(items))
	for i, item := range items {
		out[i] = r.daoToDomain(item)
	}
	return out, nil
}

func (r *GarageRepository) FindByID(ctx context.Context, id uint) (domain.GarageItem, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GarageRepository) UpdateStatus(ctx context.Context, id uint, status domain.GarageStatus) (domain.GarageItem, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *GarageRepository) UpdateDetails(ctx context.Context, id uint, nickname, photoURL string, mileageKM int) (domain.GarageItem, error) {
	updated, err := r.dao.UpdateDetails(ctx, id, nickname, photoURL, mileageKM)
	if err != nil {
		return domain.GarageItem{}, fmt.Errorf("r.dao.UpdateDetails -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *GarageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}
	return nil
}

func (r *GarageRepository) daoToDomain(i dao.GarageItem) domain.GarageItem {
	return domain.GarageItem{
		ID:             i.ID,
		UserID:         i.UserID,
		ScooterModelID: i.ScooterModelID,
		ScooterModel: domain.ScooterModel{
			ID:       i.ScooterModel.ID,
			Name:     i.ScooterModel.Name,
			Slug:     i.ScooterModel.Slug,
			BrandID:  i.ScooterModel.BrandID,
			ImageURL: i.ScooterModel.ImageURL,
			Brand: domain.Brand{
				ID:   i.ScooterModel.Brand.ID,
				Name: i.ScooterModel.Brand.Name,
				Slug: i.ScooterModel.Brand.Slug,
			},
		},
		Status:    domain.GarageStatus(i.Status),
		Nickname:  i.Nickname,
		PhotoURL:  i.PhotoURL,
		MileageKM: i.MileageKM,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
