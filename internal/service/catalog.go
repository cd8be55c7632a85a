package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/trottiparts/trottiparts-api/internal/cache"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository"
)

var (
	ErrBrandNotFound    = repository.ErrBrandNotFound
	ErrCategoryNotFound = repository.ErrCategoryNotFound
	ErrScooterNotFound  = repository.ErrScooterNotFound
	ErrPartNotFound     = repository.ErrPartNotFound
	ErrTutorialNotFound = repository.ErrTutorialNotFound
	ErrSlugExists       = repository.ErrSlugExists
)

// Cache is the shared query cache. Implementations must degrade to a miss
// on failure; a broken cache never breaks a read.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

type CatalogRepository interface {
	FindBrands(ctx context.Context) ([]domain.Brand, error)
	FindBrandBySlug(ctx context.Context, slug string) (domain.Brand, error)
	CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	UpdateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	DeleteBrand(ctx context.Context, id uint) error
	FindCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	FindScooters(ctx context.Context, brandSlug string) ([]domain.ScooterModel, error)
	FindScooterBySlug(ctx context.Context, slug string) (domain.ScooterModel, error)
	FindScooterByID(ctx context.Context, id uint) (domain.ScooterModel, error)
	CreateScooter(ctx context.Context, scooter domain.ScooterModel) (domain.ScooterModel, error)
	UpdateScooter(ctx context.Context, scooter domain.ScooterModel) (domain.ScooterModel, error)
	DeleteScooter(ctx context.Context, id uint) error
	FindParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error)
	FindPartBySlug(ctx context.Context, slug string) (domain.Part, error)
	FindPartByID(ctx context.Context, id uint) (domain.Part, error)
	CreatePart(ctx context.Context, part domain.Part) (domain.Part, error)
	UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error)
	DeletePart(ctx context.Context, id uint) error
	FindTutorials(ctx context.Context, limit int) ([]domain.Tutorial, error)
	FindTutorialBySlug(ctx context.Context, slug string) (domain.Tutorial, error)
	CreateTutorial(ctx context.Context, tutorial domain.Tutorial) (domain.Tutorial, error)
	LinkCompatibility(ctx context.Context, partID, scooterModelID uint) error
	UnlinkCompatibility(ctx context.Context, partID, scooterModelID uint) error
	CompatibilityExists(ctx context.Context, partID, scooterModelID uint) (bool, error)
}

type CatalogService struct {
	repo  CatalogRepository
	cache Cache
}

func NewCatalogService(repo CatalogRepository, cache Cache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CatalogService) GetBrands(ctx context.Context) ([]domain.Brand, error) {
	key := cache.Key("brands")

	var brands []domain.Brand
	if s.cache.Get(ctx, key, &brands) {
		return brands, nil
	}

	brands, err := s.repo.FindBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBrands -> %w", err)
	}

	s.storeInCache(ctx, key, brands)
	return brands, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, slug string) (domain.Brand, error) {
	brand, err := s.repo.FindBrandBySlug(ctx, slug)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("s.repo.FindBrandBySlug -> %w", err)
	}
	return brand, nil
}

func (s *CatalogService) CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	created, err := s.repo.CreateBrand(ctx, brand)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("s.repo.CreateBrand -> %w", err)
	}

	s.invalidate(ctx, cache.Key("brands"))
	return created, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	updated, err := s.repo.UpdateBrand(ctx, brand)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("s.repo.UpdateBrand -> %w", err)
	}

	s.invalidate(ctx, cache.Key("brands"))
	return updated, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) error {
	if err := s.repo.DeleteBrand(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteBrand -> %w", err)
	}

	s.invalidate(ctx, cache.Key("brands"))
	return nil
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	key := cache.Key("categories")

	var categories []domain.Category
	if s.cache.Get(ctx, key, &categories) {
		return categories, nil
	}

	categories, err := s.repo.FindCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCategories -> %w", err)
	}

	s.storeInCache(ctx, key, categories)
	return categories, nil
}

func (s *CatalogService) GetScooters(ctx context.Context, brandSlug string) ([]domain.ScooterModel, error) {
	key := cache.Key("scooters", brandSlug)

	var scooters []domain.ScooterModel
	if s.cache.Get(ctx, key, &scooters) {
		return scooters, nil
	}

	scooters, err := s.repo.FindScooters(ctx, brandSlug)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindScooters -> %w", err)
	}

	s.storeInCache(ctx, key, scooters)
	return scooters, nil
}

func (s *CatalogService) GetScooter(ctx context.Context, slug string) (domain.ScooterModel, error) {
	scooter, err := s.repo.FindScooterBySlug(ctx, slug)
	if err != nil {
		return domain.ScooterModel{}, fmt.Errorf("s.repo.FindScooterBySlug -> %w", err)
	}
	return scooter, nil
}

func (s *CatalogService) CreateScooter(ctx context.Context, scooter domain.ScooterModel) (domain.ScooterModel, error) {
	created, err := s.repo.CreateScooter(ctx, scooter)
	if err != nil {
		return domain.ScooterModel{}, fmt.Errorf("s.repo.CreateScooter -> %w", err)
	}

	s.invalidate(ctx, cache.Key("scooters"), cache.Key("scooters", created.Brand.Slug))
	return created, nil
}

func (s *CatalogService) UpdateScooter(ctx context.Context, scooter domain.ScooterModel) (domain.ScooterModel, error) {
	updated, err := s.repo.UpdateScooter(ctx, scooter)
	if err != nil {
		return domain.ScooterModel{}, fmt.Errorf("s.repo.UpdateScooter -> %w", err)
	}

	s.invalidate(ctx, cache.Key("scooters"), cache.Key("scooters", updated.Brand.Slug))
	return updated, nil
}

func (s *CatalogService) DeleteScooter(ctx context.Context, id uint) error {
	scooter, err := s.repo.FindScooterByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindScooterByID -> %w", err)
	}

	if err := s.repo.DeleteScooter(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteScooter -> %w", err)
	}

	s.invalidate(ctx, cache.Key("scooters"), cache.Key("scooters", scooter.Brand.Slug))
	return nil
}

func (s *CatalogService) GetParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error) {
	key := partsKey(filter)

	var parts []domain.Part
	if s.cache.Get(ctx, key, &parts) {
		return parts, nil
	}

	parts, err := s.repo.FindParts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParts -> %w", err)
	}

	s.storeInCache(ctx, key, parts)
	return parts, nil
}

func (s *CatalogService) GetPart(ctx context.Context, slug string) (domain.Part, error) {
	part, err := s.repo.FindPartBySlug(ctx, slug)
	if err != nil {
		return domain.Part{}, fmt.Errorf("s.repo.FindPartBySlug -> %w", err)
	}
	return part, nil
}

func (s *CatalogService) CreatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	created, err := s.repo.CreatePart(ctx, part)
	if err != nil {
		return domain.Part{}, fmt.Errorf("s.repo.CreatePart -> %w", err)
	}

	s.invalidatePartListings(ctx)
	return created, nil
}

func (s *CatalogService) UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	updated, err := s.repo.UpdatePart(ctx, part)
	if err != nil {
		return domain.Part{}, fmt.Errorf("s.repo.UpdatePart -> %w", err)
	}

	s.invalidatePartListings(ctx)
	return updated, nil
}

func (s *CatalogService) DeletePart(ctx context.Context, id uint) error {
	if err := s.repo.DeletePart(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeletePart -> %w", err)
	}

	s.invalidatePartListings(ctx)
	return nil
}

func (s *CatalogService) GetTutorials(ctx context.Context, limit int) ([]domain.Tutorial, error) {
	key := cache.Key("tutorials")

	var tutorials []domain.Tutorial
	if limit == 0 && s.cache.Get(ctx, key, &tutorials) {
		return tutorials, nil
	}

	tutorials, err := s.repo.FindTutorials(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTutorials -> %w", err)
	}

	if limit == 0 {
		s.storeInCache(ctx, key, tutorials)
	}
	return tutorials, nil
}

func (s *CatalogService) GetTutorial(ctx context.Context, slug string) (domain.Tutorial, error) {
	tutorial, err := s.repo.FindTutorialBySlug(ctx, slug)
	if err != nil {
		return domain.Tutorial{}, fmt.Errorf("s.repo.FindTutorialBySlug -> %w", err)
	}
	return tutorial, nil
}

// CheckCompatibility answers whether a compatibility row exists for the
// pair. A missing row is a plain false, not an error; the per-pair query is
// never cached so an admin link shows up immediately.
func (s *CatalogService) CheckCompatibility(ctx context.Context, partID, scooterModelID uint) (bool, error) {
	exists, err := s.repo.CompatibilityExists(ctx, partID, scooterModelID)
	if err != nil {
		return false, fmt.Errorf("s.repo.CompatibilityExists -> %w", err)
	}
	return exists, nil
}

func (s *CatalogService) LinkCompatibility(ctx context.Context, partID, scooterModelID uint) error {
	if _, err := s.repo.FindPartByID(ctx, partID); err != nil {
		return fmt.Errorf("s.repo.FindPartByID -> %w", err)
	}
	if _, err := s.repo.FindScooterByID(ctx, scooterModelID); err != nil {
		return fmt.Errorf("s.repo.FindScooterByID -> %w", err)
	}

	if err := s.repo.LinkCompatibility(ctx, partID, scooterModelID); err != nil {
		return fmt.Errorf("s.repo.LinkCompatibility -> %w", err)
	}

	s.invalidatePartListings(ctx)
	return nil
}

func (s *CatalogService) UnlinkCompatibility(ctx context.Context, partID, scooterModelID uint) error {
	if err := s.repo.UnlinkCompatibility(ctx, partID, scooterModelID); err != nil {
		return fmt.Errorf("s.repo.UnlinkCompatibility -> %w", err)
	}

	s.invalidatePartListings(ctx)
	return nil
}

// invalidatePartListings drops the unfiltered part listing and the pépites
// listing. Filtered listings expire by TTL; precise per-filter tracking is
// not worth the bookkeeping at catalogue scale.
func (s *CatalogService) invalidatePartListings(ctx context.Context) {
	s.invalidate(ctx, cache.Key("parts"), cache.Key("parts", "pepites"))
}

func (s *CatalogService) storeInCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		zap.L().Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		zap.L().Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func partsKey(filter domain.PartFilter) string {
	if filter.PepitesOnly {
		return cache.Key("parts", "pepites", filter.CategorySlug, filter.ScooterSlug)
	}
	return cache.Key("parts", filter.CategorySlug, filter.ScooterSlug, limitFragment(filter.Limit))
}

func limitFragment(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf("limit=%d", limit)
}
