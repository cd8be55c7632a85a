package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type AddGarageItemRequest struct {
	ScooterModelID uint   `json:"scooter_model_id"`
	Status         string `json:"status"`
}

func (req *AddGarageItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ScooterModelID, validation.Required),
		validation.Field(&req.Status, validation.In("", "favorited", "owned")),
	)
}

type UpdateGarageItemRequest struct {
	Nickname  string `json:"nickname"`
	PhotoURL  string `json:"photo_url"`
	MileageKM int    `json:"mileage_km"`
}

func (req *UpdateGarageItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nickname, validation.Length(0, 100)),
		validation.Field(&req.PhotoURL, is.URL),
		validation.Field(&req.MileageKM, validation.Min(0)),
	)
}
