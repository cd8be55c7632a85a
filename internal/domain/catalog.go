package domain

import "time"

type Brand struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ScooterModel struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	BrandID      uint      `json:"brand_id"`
	Brand        Brand     `json:"brand,omitempty"`
	Voltage      int       `json:"voltage"`
	Amperage     float64   `json:"amperage"`
	Wattage      int       `json:"wattage"`
	MaxSpeedKMH  int       `json:"max_speed_kmh"`
	RangeKM      int       `json:"range_km"`
	TireSize     string    `json:"tire_size"`
	ImageURL     string    `json:"image_url"`
	AffiliateURL string    `json:"affiliate_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Part struct {
	ID                uint              `json:"id"`
	Name              string            `json:"name"`
	Slug              string            `json:"slug"`
	CategoryID        uint              `json:"category_id"`
	Category          Category          `json:"category,omitempty"`
	PriceCents        int64             `json:"price_cents"`
	StockQuantity     int               `json:"stock_quantity"`
	InstallDifficulty string            `json:"install_difficulty"` // "facile", "moyen" or "difficile"
	InstallMinutes    int               `json:"install_minutes"`
	InstallTools      string            `json:"install_tools"`
	TechnicalSpecs    map[string]string `json:"technical_specs,omitempty"`
	Pepite            bool              `json:"pepite"` // "Pépite du Chef" editorial pick
	ImageURL          string            `json:"image_url"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// PartCompatibility asserts that a part fits a scooter model. The row's
// existence is the whole relationship; it carries no attributes of its own.
type PartCompatibility struct {
	PartID         uint `json:"part_id"`
	ScooterModelID uint `json:"scooter_model_id"`
}

type Tutorial struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartFilter narrows catalogue part listings. Zero values mean "no filter".
type PartFilter struct {
	CategorySlug string
	ScooterSlug  string
	PepitesOnly  bool
	Limit        int
}
