package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AddCartItemRequest struct {
	PartID   uint `json:"part_id"`
	Quantity int  `json:"quantity"`
}

func (req *AddCartItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartID, validation.Required),
		validation.Field(&req.Quantity, validation.Min(1)),
	)
}

// UpdateCartItemRequest carries the new absolute quantity. Zero is legal
// and removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (req *UpdateCartItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Min(0)),
	)
}
