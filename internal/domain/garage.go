package domain

import "time"

// GarageStatus is the tagged variant behind a garage entry: a scooter is
// either favorited or owned ("ma écurie"), never both.
type GarageStatus string

const (
	GarageFavorited GarageStatus = "favorited"
	GarageOwned     GarageStatus = "owned"
)

func (s GarageStatus) IsValid() bool {
	return s == GarageFavorited || s == GarageOwned
}

type GarageItem struct {
	ID             uint         `json:"id"`
	UserID         uint         `json:"user_id"`
	ScooterModelID uint         `json:"scooter_model_id"`
	ScooterModel   ScooterModel `json:"scooter_model,omitempty"`
	Status         GarageStatus `json:"status"`
	Nickname       string       `json:"nickname,omitempty"`
	PhotoURL       string       `json:"photo_url,omitempty"`
	MileageKM      int          `json:"mileage_km"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// GarageMembership answers "is this scooter in my garage, and how".
type GarageMembership struct {
	InGarage bool         `json:"in_garage"`
	Status   GarageStatus `json:"status,omitempty"`
	ItemID   uint         `json:"item_id,omitempty"`
}

// Membership scans a garage list for the given scooter. O(list) is fine at
// garage cardinality.
func Membership(items []GarageItem, scooterModelID uint) GarageMembership {
	for _, item := range items {
		if item.ScooterModelID == scooterModelID {
			return GarageMembership{InGarage: true, Status: item.Status, ItemID: item.ID}
		}
	}
	return GarageMembership{}
}
