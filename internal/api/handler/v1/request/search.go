package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SearchSelectionRequest struct {
	Type  string `json:"type"`
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

func (req *SearchSelectionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Type, validation.Required, validation.In("models", "parts", "tutorials")),
		validation.Field(&req.Slug, validation.Required),
		validation.Field(&req.Label, validation.Required),
	)
}
