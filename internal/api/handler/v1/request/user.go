package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DisplayName, validation.Required, validation.Length(1, 100)),
	)
}
