package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository/dao"
)

var (
	ErrBrandNotFound    = dao.ErrBrandNotFound
	ErrCategoryNotFound = dao.ErrCategoryNotFound
	ErrScooterNotFound  = dao.ErrScooterNotFound
	ErrPartNotFound     = dao.ErrPartNotFound
	ErrTutorialNotFound = dao.ErrTutorialNotFound
	ErrSlugExists       = dao.ErrSlugExists
)

type CatalogDAO interface {
	FindBrands(ctx context.Context) ([]dao.Brand, error)
	FindBrandBySlug(ctx context.Context, slug string) (dao.Brand, error)
	InsertBrand(ctx context.Context, brand dao.Brand) (dao.Brand, error)
	UpdateBrand(ctx context.Context, brand dao.Brand) (dao.Brand, error)
	DeleteBrand(ctx context.Context, id uint) error
	FindCategories(ctx context.Context) ([]dao.Category, error)
	InsertCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	FindScooters(ctx context.Context, brandSlug string) ([]dao.ScooterModel, error)
	FindScooterBySlug(ctx context.Context, slug string) (dao.ScooterModel, error)
	FindScooterByID(ctx context.Context, id uint) (dao.ScooterModel, error)
	InsertScooter(ctx context.Context, scooter dao.ScooterModel) (dao.ScooterModel, error)
	UpdateScooter(ctx context.Context, scooter dao.ScooterModel) (dao.ScooterModel, error)
	DeleteScooter(ctx context.Context, id uint) error
	FindParts(ctx context.Context, categorySlug, scooterSlug string, pepitesOnly bool, limit int) ([]dao.Part, error)
	FindPartBySlug(ctx context.Context, slug string) (dao.Part, error)
	FindPartByID(ctx context.Context, id uint) (dao.Part, error)
	InsertPart(ctx context.Context, part dao.Part) (dao.Part, error)
	UpdatePart(ctx context.Context, part dao.Part) (dao.Part, error)
	DeletePart(ctx context.Context, id uint) error
	FindTutorials(ctx context.Context, limit int) ([]dao.Tutorial, error)
	FindTutorialBySlug(ctx context.Context, slug string) (dao.Tutorial, error)
	InsertTutorial(ctx context.Context, tutorial dao.Tutorial) (dao.Tutorial, error)
	LinkCompatibility(ctx context.Context, partID, scooterModelID uint) error
	UnlinkCompatibility(ctx context.Context, partID, scooterModelID uint) error
	CompatibilityExists(ctx context.Context, partID, scooterModelID uint) (bool, error)
	SearchScooters(ctx context.Context, term string, limit int) ([]dao.ScooterModel, error)
	SearchParts(ctx context.Context, term string, limit int) ([]dao.Part, error)
	SearchTutorials(ctx context.Context, term string, limit int) ([]dao.Tutorial, error)
}

type CatalogRepository struct {
	dao CatalogDAO
}

func NewCatalogRepository(dao CatalogDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: dao,
	}
}

func (r *CatalogRepository) FindBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := r.dao.FindBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBrands -> %w", err)
	}

	out := make([]domain.Brand, len(brands))
	for i, b := range brands {
		out[i] = r.brandDaoToDomain(b)
	}
	return out, nil
}

func (r *CatalogRepository) FindBrandBySlug(ctx context.Context, slug string) (domain.Brand, error) {
	found, err := r.dao.FindBrandBySlug(ctx, slug)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("r.dao.FindBrandBySlug -> %w", err)
	}

	return r.brandDaoToDomain(found), nil
}

func (r *CatalogRepository) CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	created, err := r.dao.InsertBrand(ctx, r.brandDomainToDao(brand))
	if err != nil {
		return domain.Brand{}, fmt.Errorf("r.dao.InsertBrand -> %w", err)
	}

	return r.brandDaoToDomain(created), nil
}

func (r *CatalogRepository) UpdateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	updated, err := r.dao.UpdateBrand(ctx, r.brandDomainToDao(brand))
	if err != nil {
		return domain.Brand{}, fmt.Errorf("r.dao.UpdateBrand -> %w", err)
	}

	return r.brandDaoToDomain(updated), nil
}

func (r *CatalogRepository) DeleteBrand(ctx context.Context, id uint) error {
	if err := r.dao.DeleteBrand(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteBrand -> %w", err)
	}
	return nil
}

func (r *CatalogRepository) FindCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := r.dao.FindCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCategories -> %w", err)
	}

	out := make([]domain.Category, len(categories))
	for i, c := range categories {
		out[i] = domain.Category{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return out, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := r.dao.InsertCategory(ctx, dao.Category{Name: category.Name, Slug: category.Slug})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return domain.Category{ID: created.ID, Name: created.Name, Slug: created.Slug}, nil
}

func (r *CatalogRepository) FindScooters(ctx context.Context, brandSlug string) ([]domain.ScooterModel, error) {
	scooters, err := r.dao.FindScooters(ctx, brandSlug)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindScooters -> %w", err)
	}

	out := make([]domain.ScooterModel, len(scooters))
	for i, s := range scooters {
		out[i] = r.scooterDaoToDomain(s)
	}
	return out, nil
}

func (r *CatalogRepository) FindScooterBySlug(ctx context.Context, slug string) (domain.ScooterModel, error) {
	found, err := r.dao.FindScooterBySlug(ctx, slug)
	if err != nil {
		return domain.ScooterModel{}, fmt.Errorf("r.dao.FindScooterBySlug -> %w", err)
	}

	return r.scooterDaoToDomain(found), nil
}

func (r *CatalogRepository) FindScooterByID(ctx context.Context, id uint) (domain.ScooterModel, error) {
	found, err := r.dao.FindScooterByID(ctx, id)
	if err != nil {
		return domain.ScooterModel{}, fmt.Errorf("r.dao.FindScooterByID -> %w", err)
	}

	return r.scooterDaoToDomain(found), nil
}

func (r *CatalogRepository) CreateScooter(ctx context.Context, scooter domain.ScooterModel) (domain.ScooterModel, error) {
	created, err := r.dao.InsertScooter(ctx, r.scooterDomainToDao(scooter))
	if err != nil {
		return domain.ScooterModel{}, fmt.Errorf("r.dao.InsertScooter -> %w", err)
	}

	return r.scooterDaoToDomain(created), nil
}

func (r *CatalogRepository) UpdateScooter(ctx context.Context, scooter domain.ScooterModel) (domain.ScooterModel, error) {
	updated, err := r.dao.UpdateScooter(ctx, r.scooterDomainToDao(scooter))
	if err != nil {
		return domain.ScooterModel{}, fmt.Errorf("r.dao.UpdateScooter -> %w", err)
	}

	return r.scooterDaoToDomain(updated), nil
}

func (r *CatalogRepository) DeleteScooter(ctx context.Context, id uint) error {
	if err := r.dao.DeleteScooter(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteScooter -> %w", err)
	}
	return nil
}

func (r *CatalogRepository) FindParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error) {
	parts, err := r.dao.FindParts(ctx, filter.CategorySlug, filter.ScooterSlug, filter.PepitesOnly, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParts -> %w", err)
	}

	out := make([]domain.Part, len(parts))
	for i, p := range parts {
		out[i] = r.partDaoToDomain(p)
	}
	return out, nil
}

func (r *CatalogRepository) FindPartBySlug(ctx context.Context, slug string) (domain.Part, error) {
	found, err := r.dao.FindPartBySlug(ctx, slug)
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.FindPartBySlug -> %w", err)
	}

	return r.partDaoToDomain(found), nil
}

func (r *CatalogRepository) FindPartByID(ctx context.Context, id uint) (domain.Part, error) {
	found, err := r.dao.FindPartByID(ctx, id)
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.FindPartByID -> %w", err)
	}

	return r.partDaoToDomain(found), nil
}

func (r *CatalogRepository) CreatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	created, err := r.dao.InsertPart(ctx, r.partDomainToDao(part))
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.InsertPart -> %w", err)
	}

	return r.partDaoToDomain(created), nil
}

func (r *CatalogRepository) UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	updated, err := r.dao.UpdatePart(ctx, r.partDomainToDao(part))
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.UpdatePart -> %w", err)
	}

	return r.partDaoToDomain(updated), nil
}

func (r *CatalogRepository) DeletePart(ctx context.Context, id uint) error {
	if err := r.dao.DeletePart(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeletePart -> %w", err)
	}
	return nil
}

func (r *CatalogRepository) FindTutorials(ctx context.Context, limit int) ([]domain.Tutorial, error) {
	tutorials, err := r.dao.FindTutorials(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTutorials -> %w", err)
	}

	out := make([]domain.Tutorial, len(tutorials))
	for i, t := range tutorials {
		out[i] = r.tutorialDaoToDomain(t)
	}
	return out, nil
}

func (r *CatalogRepository) FindTutorialBySlug(ctx context.Context, slug string) (domain.Tutorial, error) {
	found, err := r.dao.FindTutorialBySlug(ctx, slug)
	if err != nil {
		return domain.Tutorial{}, fmt.Errorf("r.dao.FindTutorialBySlug -> %w", err)
	}

	return r.tutorialDaoToDomain(found), nil
}

func (r *CatalogRepository) CreateTutorial(ctx context.Context, tutorial domain.Tutorial) (domain.Tutorial, error) {
	created, err := r.dao.InsertTutorial(ctx, dao.Tutorial{
		Title:   tutorial.Title,
		Slug:    tutorial.Slug,
		Summary: tutorial.Summary,
		Body:    tutorial.Body,
	})
	if err != nil {
		return domain.Tutorial{}, fmt.Errorf("r.dao.InsertTutorial -> %w", err)
	}

	return r.tutorialDaoToDomain(created), nil
}

func (r *CatalogRepository) LinkCompatibility(ctx context.Context, partID, scooterModelID uint) error {
	if err := r.dao.LinkCompatibility(ctx, partID, scooterModelID); err != nil {
		return fmt.Errorf("r.dao.LinkCompatibility -> %w", err)
	}
	return nil
}

func (r *CatalogRepository) UnlinkCompatibility(ctx context.Context, partID, scooterModelID uint) error {
	if err := r.dao.UnlinkCompatibility(ctx, partID, scooterModelID); err != nil {
		return fmt.Errorf("r.dao.UnlinkCompatibility -> %w", err)
	}
	return nil
}

func (r *CatalogRepository) CompatibilityExists(ctx context.Context, partID, scooterModelID uint) (bool, error) {
	exists, err := r.dao.CompatibilityExists(ctx, partID, scooterModelID)
	if err != nil {
		return false, fmt.Errorf("r.dao.CompatibilityExists -> %w", err)
	}
	return exists, nil
}

func (r *CatalogRepository) SearchScooters(ctx context.Context, term string, limit int) ([]domain.ScooterModel, error) {
	scooters, err := r.dao.SearchScooters(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SearchScooters -> %w", err)
	}

	out := make([]domain.ScooterModel, len(scooters))
	for i, s := range scooters {
		out[i] = r.scooterDaoToDomain(s)
	}
	return out, nil
}

func (r *CatalogRepository) SearchParts(ctx context.Context, term string, limit int) ([]domain.Part, error) {
	parts, err := r.dao.SearchParts(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SearchParts -> %w", err)
	}

	out := make([]domain.Part, len(parts))
	for i, p := range parts {
		out[i] = r.partDaoToDomain(p)
	}
	return out, nil
}

func (r *CatalogRepository) SearchTutorials(ctx context.Context, term string, limit int) ([]domain.Tutorial, error) {
	tutorials, err := r.dao.SearchTutorials(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SearchTutorials -> %w", err)
	}

	out := make([]domain.Tutorial, len(tutorials))
	for i, t := range tutorials {
		out[i] = r.tutorialDaoToDomain(t)
	}
	return out, nil
}

func (r *CatalogRepository) brandDaoToDomain(b dao.Brand) domain.Brand {
	return domain.Brand{
		ID:        b.ID,
		Name:      b.Name,
		Slug:      b.Slug,
		LogoURL:   b.LogoURL,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (r *CatalogRepository) brandDomainToDao(b domain.Brand) dao.Brand {
	return dao.Brand{
		ID:      b.ID,
		Name:    b.Name,
		Slug:    b.Slug,
		LogoURL: b.LogoURL,
	}
}

func (r *CatalogRepository) scooterDaoToDomain(s dao.ScooterModel) domain.ScooterModel {
	return domain.ScooterModel{
		ID:           s.ID,
		Name:         s.Name,
		Slug:         s.Slug,
		BrandID:      s.BrandID,
		Brand:        r.brandDaoToDomain(s.Brand),
		Voltage:      s.Voltage,
		Amperage:     s.Amperage,
		Wattage:      s.Wattage,
		MaxSpeedKMH:  s.MaxSpeedKMH,
		RangeKM:      s.RangeKM,
		TireSize:     s.TireSize,
		ImageURL:     s.ImageURL,
		AffiliateURL: s.AffiliateURL,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (r *CatalogRepository) scooterDomainToDao(s domain.ScooterModel) dao.ScooterModel {
	return dao.ScooterModel{
		ID:           s.ID,
		Name:         s.Name,
		Slug:         s.Slug,
		BrandID:      s.BrandID,
		Voltage:      s.Voltage,
		Amperage:     s.Amperage,
		Wattage:      s.Wattage,
		MaxSpeedKMH:  s.MaxSpeedKMH,
		RangeKM:      s.RangeKM,
		TireSize:     s.TireSize,
		ImageURL:     s.ImageURL,
		AffiliateURL: s.AffiliateURL,
	}
}

func (r *CatalogRepository) partDaoToDomain(p dao.Part) domain.Part {
	specs := map[string]string{}
	if p.TechnicalSpecs != "" {
		// A corrupt blob degrades to no specs rather than failing the read.
		_ = json.Unmarshal([]byte(p.TechnicalSpecs), &specs)
	}

	return domain.Part{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		CategoryID:        p.CategoryID,
		Category:          domain.Category{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug},
		PriceCents:        p.PriceCents,
		StockQuantity:     p.StockQuantity,
		InstallDifficulty: p.InstallDifficulty,
		InstallMinutes:    p.InstallMinutes,
		InstallTools:      p.InstallTools,
		TechnicalSpecs:    specs,
		Pepite:            p.Pepite,
		ImageURL:          p.ImageURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (r *CatalogRepository) partDomainToDao(p domain.Part) dao.Part {
	specs := ""
	if len(p.TechnicalSpecs) > 0 {
		if raw, err := json.Marshal(p.TechnicalSpecs); err == nil {
			specs = string(raw)
		}
	}

	return dao.Part{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		CategoryID:        p.CategoryID,
		PriceCents:        p.PriceCents,
		StockQuantity:     p.StockQuantity,
		InstallDifficulty: p.InstallDifficulty,
		InstallMinutes:    p.InstallMinutes,
		InstallTools:      p.InstallTools,
		TechnicalSpecs:    specs,
		Pepite:            p.Pepite,
		ImageURL:          p.ImageURL,
	}
}

func (r *CatalogRepository) tutorialDaoToDomain(t dao.Tutorial) domain.Tutorial {
	return domain.Tutorial{
		ID:        t.ID,
		Title:     t.Title,
		Slug:      t.Slug,
		Summary:   t.Summary,
		Body:      t.Body,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
