package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name string `gorm:"not null"`
	Role string `gorm:"not null;default:customer"` // "customer" or "admin"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Profile struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"uniqueIndex;not null"`
	DisplayName       string `gorm:"not null"`
	PerformancePoints int    `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// Insert creates the user and its profile in one transaction; the profile
// starts with the signup point bonus already applied by the caller.
func (d *UserDAO) Insert(ctx context.Context, user User, profile Profile) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err, "uni_users_email") {
				return ErrUserEmailExists
			}
			return err
		}

		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindProfileByUserID(ctx context.Context, userID uint) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *UserDAO) AddPoints(ctx context.Context, userID uint, points int) (Profile, error) {
	result := d.db.WithContext(ctx).
		Model(&Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("performance_points", gorm.Expr("performance_points + ?", points))
	if result.Error != nil {
		return Profile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Profile{}, ErrProfileNotFound
	}

	return d.FindProfileByUserID(ctx, userID)
}

func (d *UserDAO) UpdateDisplayName(ctx context.Context, userID uint, displayName string) (Profile, error) {
	result := d.db.WithContext(ctx).
		Model(&Profile{}).
		Where("user_id = ?", userID).
		Update("display_name", displayName)
	if result.Error != nil {
		return Profile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Profile{}, ErrProfileNotFound
	}

	return d.FindProfileByUserID(ctx, userID)
}
