package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type BrandRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

func (req *BrandRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LogoURL, is.URL),
	)
}

type CategoryRequest struct {
	Name string `json:"name"`
}

func (req *CategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

type ScooterRequest struct {
	Name         string  `json:"name"`
	BrandID      uint    `json:"brand_id"`
	Voltage      int     `json:"voltage"`
	Amperage     float64 `json:"amperage"`
	Wattage      int     `json:"wattage"`
	MaxSpeedKMH  int     `json:"max_speed_kmh"`
	RangeKM      int     `json:"range_km"`
	TireSize     string  `json:"tire_size"`
	ImageURL     string  `json:"image_url"`
	AffiliateURL string  `json:"affiliate_url"`
}

func (req *ScooterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 150)),
		validation.Field(&req.BrandID, validation.Required),
		validation.Field(&req.Voltage, validation.Min(0)),
		validation.Field(&req.Wattage, validation.Min(0)),
		validation.Field(&req.MaxSpeedKMH, validation.Min(0)),
		validation.Field(&req.RangeKM, validation.Min(0)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.AffiliateURL, is.URL),
	)
}

type PartRequest struct {
	Name              string            `json:"name"`
	CategoryID        uint              `json:"category_id"`
	PriceCents        int64             `json:"price_cents"`
	StockQuantity     int               `json:"stock_quantity"`
	InstallDifficulty string            `json:"install_difficulty"`
	InstallMinutes    int               `json:"install_minutes"`
	InstallTools      string            `json:"install_tools"`
	TechnicalSpecs    map[string]string `json:"technical_specs"`
	Pepite            bool              `json:"pepite"`
	ImageURL          string            `json:"image_url"`
}

func (req *PartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 150)),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.PriceCents, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.StockQuantity, validation.Min(0)),
		validation.Field(&req.InstallDifficulty, validation.In("", "facile", "moyen", "difficile")),
		validation.Field(&req.InstallMinutes, validation.Min(0)),
		validation.Field(&req.ImageURL, is.URL),
	)
}

type TutorialRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

func (req *TutorialRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Body, validation.Required),
	)
}

type CompatibilityRequest struct {
	PartID         uint `json:"part_id"`
	ScooterModelID uint `json:"scooter_model_id"`
}

func (req *CompatibilityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartID, validation.Required),
		validation.Field(&req.ScooterModelID, validation.Required),
	)
}
