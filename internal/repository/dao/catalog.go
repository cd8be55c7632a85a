package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrBrandNotFound    = errors.New("brand not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrScooterNotFound  = errors.New("scooter model not found")
	ErrPartNotFound     = errors.New("part not found")
	ErrTutorialNotFound = errors.New("tutorial not found")
	ErrSlugExists       = errors.New("slug already taken")
)

type Brand struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Slug      string `gorm:"unique;not null"`
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Slug string `gorm:"unique;not null"`
}

type ScooterModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Slug         string `gorm:"unique;not null"`
	BrandID      uint   `gorm:"not null;index"`
	Brand        Brand  `gorm:"foreignKey:BrandID"`
	Voltage      int
	Amperage     float64
	Wattage      int
	MaxSpeedKMH  int
	RangeKM      int
	TireSize     string
	ImageURL     string
	AffiliateURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Part struct {
	ID                uint     `gorm:"primaryKey"`
	Name              string   `gorm:"not null"`
	Slug              string   `gorm:"unique;not null"`
	CategoryID        uint     `gorm:"not null;index"`
	Category          Category `gorm:"foreignKey:CategoryID"`
	PriceCents        int64    `gorm:"not null"`
	StockQuantity     int      `gorm:"not null;default:0"`
	InstallDifficulty string
	InstallMinutes    int
	InstallTools      string
	TechnicalSpecs    string `gorm:"type:text"` // JSON key/value blob
	Pepite            bool   `gorm:"not null;default:false"`
	ImageURL          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type PartCompatibility struct {
	PartID         uint `gorm:"primaryKey;autoIncrement:false"`
	ScooterModelID uint `gorm:"primaryKey;autoIncrement:false"`
}

func (PartCompatibility) TableName() string {
	return "part_compatibilities"
}

type Tutorial struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Slug      string `gorm:"unique;not null"`
	Summary   string
	Body      string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func (d *CatalogDAO) FindBrands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	result := d.db.WithContext(ctx).Order("name").Find(&brands)
	if result.Error != nil {
		return nil, result.Error
	}
	return brands, nil
}

func (d *CatalogDAO) FindBrandBySlug(ctx context.Context, slug string) (Brand, error) {
	var brand Brand
	result := d.db.WithContext(ctx).First(&brand, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Brand{}, ErrBrandNotFound
		}
		return Brand{}, result.Error
	}
	return brand, nil
}

func (d *CatalogDAO) InsertBrand(ctx context.Context, brand Brand) (Brand, error) {
	result := d.db.WithContext(ctx).Create(&brand)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_brands_slug") {
			return Brand{}, ErrSlugExists
		}
		return Brand{}, result.Error
	}
	return brand, nil
}

func (d *CatalogDAO) UpdateBrand(ctx context.Context, brand Brand) (Brand, error) {
	result := d.db.WithContext(ctx).Model(&Brand{ID: brand.ID}).Updates(map[string]any{
		"name":     brand.Name,
		"slug":     brand.Slug,
		"logo_url": brand.LogoURL,
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_brands_slug") {
			return Brand{}, ErrSlugExists
		}
		return Brand{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Brand{}, ErrBrandNotFound
	}
	return d.FindBrandBySlug(ctx, brand.Slug)
}

func (d *CatalogDAO) DeleteBrand(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Brand{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBrandNotFound
	}
	return nil
}

func (d *CatalogDAO) FindCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	result := d.db.WithContext(ctx).Order("name").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (d *CatalogDAO) InsertCategory(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_categories_slug") {
			return Category{}, ErrSlugExists
		}
		return Category{}, result.Error
	}
	return category, nil
}

func (d *CatalogDAO) FindScooters(ctx context.Context, brandSlug string) ([]ScooterModel, error) {
	var scooters []ScooterModel
	query := d.db.WithContext(ctx).Preload("Brand").Order("name")
	if brandSlug != "" {
		query = query.
			Joins("JOIN brands ON brands.id = scooter_models.brand_id").
			Where("brands.slug = ?", brandSlug)
	}
	result := query.Find(&scooters)
	if result.Error != nil {
		return nil, result.Error
	}
	return scooters, nil
}

func (d *CatalogDAO) FindScooterBySlug(ctx context.Context, slug string) (ScooterModel, error) {
	var scooter ScooterModel
	result := d.db.WithContext(ctx).Preload("Brand").First(&scooter, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ScooterModel{}, ErrScooterNotFound
		}
		return ScooterModel{}, result.Error
	}
	return scooter, nil
}

func (d *CatalogDAO) FindScooterByID(ctx context.Context, id uint) (ScooterModel, error) {
	var scooter ScooterModel
	result := d.db.WithContext(ctx).Preload("Brand").First(&scooter, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ScooterModel{}, ErrScooterNotFound
		}
		return ScooterModel{}, result.Error
	}
	return scooter, nil
}

func (d *CatalogDAO) InsertScooter(ctx context.Context, scooter ScooterModel) (ScooterModel, error) {
	result := d.db.WithContext(ctx).Create(&scooter)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_scooter_models_slug") {
			return ScooterModel{}, ErrSlugExists
		}
		return ScooterModel{}, result.Error
	}
	return scooter, nil
}

func (d *CatalogDAO) UpdateScooter(ctx context.Context, scooter ScooterModel) (ScooterModel, error) {
	result := d.db.WithContext(ctx).Model(&ScooterModel{ID: scooter.ID}).Updates(map[string]any{
		"name":          scooter.Name,
		"slug":          scooter.Slug,
		"brand_id":      scooter.BrandID,
		"voltage":       scooter.Voltage,
		"amperage":      scooter.Amperage,
		"wattage":       scooter.Wattage,
		"max_speed_kmh": scooter.MaxSpeedKMH,
		"range_km":      scooter.RangeKM,
		"tire_size":     scooter.TireSize,
		"image_url":     scooter.ImageURL,
		"affiliate_url": scooter.AffiliateURL,
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_scooter_models_slug") {
			return ScooterModel{}, ErrSlugExists
		}
		return ScooterModel{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ScooterModel{}, ErrScooterNotFound
	}
	return d.FindScooterByID(ctx, scooter.ID)
}

func (d *CatalogDAO) DeleteScooter(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ScooterModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScooterNotFound
	}
	return nil
}

func (d *CatalogDAO) FindParts(ctx context.Context, categorySlug, scooterSlug string, pepitesOnly bool, limit int) ([]Part, error) {
	var parts []Part
	query := d.db.WithContext(ctx).Preload("Category").Order("parts.name")
	if categorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = parts.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if scooterSlug != "" {
		query = query.
			Joins("JOIN part_compatibilities ON part_compatibilities.part_id = parts.id").
			Joins("JOIN scooter_models ON scooter_models.id = part_compatibilities.scooter_model_id").
			Where("scooter_models.slug = ?", scooterSlug)
	}
	if pepitesOnly {
		query = query.Where("parts.pepite = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Find(&parts)
	if result.Error != nil {
		return nil, result.Error
	}
	return parts, nil
}

func (d *CatalogDAO) FindPartBySlug(ctx context.Context, slug string) (Part, error) {
	var part Part
	result := d.db.WithContext(ctx).Preload("Category").First(&part, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Part{}, ErrPartNotFound
		}
		return Part{}, result.Error
	}
	return part, nil
}

func (d *CatalogDAO) FindPartByID(ctx context.Context, id uint) (Part, error) {
	var part Part
	result := d.db.WithContext(ctx).Preload("Category").First(&part, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Part{}, ErrPartNotFound
		}
		return Part{}, result.Error
	}
	return part, nil
}

func (d *CatalogDAO) InsertPart(ctx context.Context, part Part) (Part, error) {
	result := d.db.WithContext(ctx).Create(&part)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_parts_slug") {
			return Part{}, ErrSlugExists
		}
		return Part{}, result.Error
	}
	return part, nil
}

func (d *CatalogDAO) UpdatePart(ctx context.Context, part Part) (Part, error) {
	result := d.db.WithContext(ctx).Model(&Part{ID: part.ID}).Updates(map[string]any{
		"name":               part.Name,
		"slug":               part.Slug,
		"category_id":        part.CategoryID,
		"price_cents":        part.PriceCents,
		"stock_quantity":     part.StockQuantity,
		"install_difficulty": part.InstallDifficulty,
		"install_minutes":    part.InstallMinutes,
		"install_tools":      part.InstallTools,
		"technical_specs":    part.TechnicalSpecs,
		"pepite":             part.Pepite,
		"image_url":          part.ImageURL,
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_parts_slug") {
			return Part{}, ErrSlugExists
		}
		return Part{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Part{}, ErrPartNotFound
	}
	return d.FindPartByID(ctx, part.ID)
}

func (d *CatalogDAO) DeletePart(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Part{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPartNotFound
	}
	return nil
}

// decrementStock subtracts qty from a part's stock inside the caller's
// transaction, refusing to go negative. Zero rows touched means the part
// sold out since the quantity was chosen.
func decrementStock(tx *gorm.DB, partID uint, qty int) error {
	result := tx.
		Model(&Part{}).
		Where("id = ? AND stock_quantity >= ?", partID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (d *CatalogDAO) FindTutorials(ctx context.Context, limit int) ([]Tutorial, error) {
	var tutorials []Tutorial
	query := d.db.WithContext(ctx).Order("title")
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Find(&tutorials)
	if result.Error != nil {
		return nil, result.Error
	}
	return tutorials, nil
}

func (d *CatalogDAO) FindTutorialBySlug(ctx context.Context, slug string) (Tutorial, error) {
	var tutorial Tutorial
	result := d.db.WithContext(ctx).First(&tutorial, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Tutorial{}, ErrTutorialNotFound
		}
		return Tutorial{}, result.Error
	}
	return tutorial, nil
}

func (d *CatalogDAO) InsertTutorial(ctx context.Context, tutorial Tutorial) (Tutorial, error) {
	result := d.db.WithContext(ctx).Create(&tutorial)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_tutorials_slug") {
			return Tutorial{}, ErrSlugExists
		}
		return Tutorial{}, result.Error
	}
	return tutorial, nil
}

func (d *CatalogDAO) LinkCompatibility(ctx context.Context, partID, scooterModelID uint) error {
	link := PartCompatibility{PartID: partID, ScooterModelID: scooterModelID}
	result := d.db.WithContext(ctx).Create(&link)
	if result.Error != nil {
		// Linking twice is a no-op, not an error.
		if isUniqueViolation(result.Error, "part_compatibilities_pkey") {
			return nil
		}
		return result.Error
	}
	return nil
}

func (d *CatalogDAO) UnlinkCompatibility(ctx context.Context, partID, scooterModelID uint) error {
	return d.db.WithContext(ctx).
		Where("part_id = ? AND scooter_model_id = ?", partID, scooterModelID).
		Delete(&PartCompatibility{}).Error
}

func (d *CatalogDAO) CompatibilityExists(ctx context.Context, partID, scooterModelID uint) (bool, error) {
	var count int64
	result := d.db.WithContext(ctx).
		Model(&PartCompatibility{}).
		Where("part_id = ? AND scooter_model_id = ?", partID, scooterModelID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// searchPattern lowercases the term to match the LOWER() on the column;
// Postgres LIKE is case-sensitive.
func searchPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

func (d *CatalogDAO) SearchScooters(ctx context.Context, term string, limit int) ([]ScooterModel, error) {
	var scooters []ScooterModel
	result := d.db.WithContext(ctx).Preload("Brand").
		Where("LOWER(name) LIKE ?", searchPattern(term)).
		Limit(limit).
		Find(&scooters)
	if result.Error != nil {
		return nil, result.Error
	}
	return scooters, nil
}

func (d *CatalogDAO) SearchParts(ctx context.Context, term string, limit int) ([]Part, error) {
	var parts []Part
	result := d.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", searchPattern(term)).
		Limit(limit).
		Find(&parts)
	if result.Error != nil {
		return nil, result.Error
	}
	return parts, nil
}

func (d *CatalogDAO) SearchTutorials(ctx context.Context, term string, limit int) ([]Tutorial, error) {
	var tutorials []Tutorial
	result := d.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", searchPattern(term)).
		Limit(limit).
		Find(&tutorials)
	if result.Error != nil {
		return nil, result.Error
	}
	return tutorials, nil
}
