package domain

import (
	"math"
	"time"
)

// VAT rate applied at display time. French standard rate.
const TaxRate = 0.20

type CartItem struct {
	ID              uint      `json:"id"`
	PartID          uint      `json:"part_id"`
	Name            string    `json:"name"`
	UnitPriceCents  int64     `json:"unit_price_cents"`
	Quantity        int       `json:"quantity"`
	StockCeiling    int       `json:"stock_ceiling"`
	ImageURL        string    `json:"image_url"`
	LineTotalCents  int64     `json:"line_total_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Cart struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartTotals is derived, never stored. Computing it twice over the same
// items yields the same result.
type CartTotals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
	ItemCount     int   `json:"item_count"`
}

func (c Cart) Totals() CartTotals {
	var t CartTotals
	for _, item := range c.Items {
		t.SubtotalCents += item.UnitPriceCents * int64(item.Quantity)
		t.ItemCount += item.Quantity
	}
	t.TaxCents = RoundTax(t.SubtotalCents)
	t.TotalCents = t.SubtotalCents + t.TaxCents
	return t
}

// RoundTax computes the VAT on a subtotal in cents, rounding half away
// from zero the way the storefront formats prices.
func RoundTax(subtotalCents int64) int64 {
	return int64(math.Round(float64(subtotalCents) * TaxRate))
}

// ClampQuantity caps a requested quantity at the stock ceiling. A negative
// or zero result means the line should be removed.
func ClampQuantity(requested, stock int) int {
	if requested > stock {
		return stock
	}
	return requested
}
