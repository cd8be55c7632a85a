package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrGarageItemNotFound = errors.New("garage item not found")
	ErrAlreadyInGarage    = errors.New("scooter already in garage")
)

type GarageItem struct {
	ID             uint         `gorm:"primaryKey"`
	UserID         uint         `gorm:"not null;index:idx_garage_user_scooter,unique"`
	ScooterModelID uint         `gorm:"not null;index:idx_garage_user_scooter,unique"`
	ScooterModel   ScooterModel `gorm:"foreignKey:ScooterModelID"`
	Status         string       `gorm:"not null"` // "favorited" or "owned"
	Nickname       string
	PhotoURL       string
	MileageKM      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type GarageDAO struct {
	db *gorm.DB
}

func NewGarageDAO(db *gorm.DB) *GarageDAO {
	return &GarageDAO{
		db: db,
	}
}

func (d *GarageDAO) Insert(ctx context.Context, item GarageItem) (GarageItem, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_garage_user_scooter") {
			return GarageItem{}, ErrAlreadyInGarage
		}
		return GarageItem{}, result.Error
	}
	return item, nil
}

func (d *GarageDAO) FindByUserID(ctx context.Context, userID uint) ([]GarageItem, error) {
	var items []GarageItem
	result := d.db.WithContext(ctx).
		Preload("ScooterModel").
		Preload("ScooterModel.Brand").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (d *GarageDAO) FindByID(ctx context.Context, id uint) (GarageItem, error) {
	var item GarageItem
	result := d.db.WithContext(ctx).
		Preload("ScooterModel").
		First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return GarageItem{}, ErrGarageItemNotFound
		}
		return GarageItem{}, result.Error
	}
	return item, nil
}

// UpdateStatus flips the favorited/owned tag and nothing else, so nickname,
// photo and mileage survive a promote/demote round trip.
func (d *GarageDAO) UpdateStatus(ctx context.Context, id uint, status string) (GarageItem, error) {
	result := d.db.WithContext(ctx).
		Model(&GarageItem{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return GarageItem{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GarageItem{}, ErrGarageItemNotFound
	}
	return d.FindByID(ctx, id)
}

func (d *GarageDAO) UpdateDetails(ctx context.Context, id uint, nickname, photoURL string, mileageKM int) (GarageItem, error) {
	result := d.db.WithContext(ctx).
		Model(&GarageItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"nickname":   nickname,
			"photo_url":  photoURL,
			"mileage_km": mileageKM,
		})
	if result.Error != nil {
		return GarageItem{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GarageItem{}, ErrGarageItemNotFound
	}
	return d.FindByID(ctx, id)
}

func (d *GarageDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&GarageItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGarageItemNotFound
	}
	return nil
}
