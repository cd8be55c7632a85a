package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ShippingLine  string `json:"shipping_line"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
}

func (req *CheckoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CustomerName, validation.Required, validation.Length(1, 150)),
		validation.Field(&req.CustomerEmail, validation.Required, is.Email),
		validation.Field(&req.ShippingLine, validation.Required),
		validation.Field(&req.City, validation.Required),
		validation.Field(&req.PostalCode, validation.Required, validation.Length(4, 10)),
	)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("pending", "paid", "processing", "shipped", "delivered", "cancelled")),
	)
}
