package repository

import (
	"context"
	"fmt"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrProfileNotFound = dao.ErrProfileNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User, profile dao.Profile) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindProfileByUserID(ctx context.Context, userID uint) (dao.Profile, error)
	AddPoints(ctx context.Context, userID uint, points int) (dao.Profile, error)
	UpdateDisplayName(ctx context.Context, userID uint, displayName string) (dao.Profile, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Create inserts the user together with its profile; the profile starts
// with the signup bonus.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		Role:     user.Role,
	}, dao.Profile{
		DisplayName:       user.Name,
		PerformancePoints: domain.PointsSignup,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindProfile(ctx context.Context, userID uint) (domain.Profile, error) {
	found, err := r.dao.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindProfileByUserID -> %w", err)
	}

	return r.profileDaoToDomain(found), nil
}

func (r *UserRepository) AddPoints(ctx context.Context, userID uint, points int) (domain.Profile, error) {
	updated, err := r.dao.AddPoints(ctx, userID, points)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.AddPoints -> %w", err)
	}

	return r.profileDaoToDomain(updated), nil
}

func (r *UserRepository) UpdateDisplayName(ctx context.Context, userID uint, displayName string) (domain.Profile, error) {
	updated, err := r.dao.UpdateDisplayName(ctx, userID, displayName)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.UpdateDisplayName -> %w", err)
	}

	return r.profileDaoToDomain(updated), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) profileDaoToDomain(p dao.Profile) domain.Profile {
	return domain.Profile{
		ID:                p.ID,
		UserID:            p.UserID,
		DisplayName:       p.DisplayName,
		PerformancePoints: p.PerformancePoints,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
