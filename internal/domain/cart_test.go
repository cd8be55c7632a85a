package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trottiparts/trottiparts-api/internal/domain"
)

func TestCartTotals(t *testing.T) {
	cart := domain.Cart{
		Items: []domain.CartItem{
			{PartID: 1, UnitPriceCents: 1999, Quantity: 2},
			{PartID: 2, UnitPriceCents: 5000, Quantity: 1},
		},
	}

	totals := cart.Totals()

	assert.Equal(t, int64(8998), totals.SubtotalCents)
	assert.Equal(t, int64(1800), totals.TaxCents)
	assert.Equal(t, int64(10798), totals.TotalCents)
	assert.Equal(t, 3, totals.ItemCount)
}

func TestCartTotals_AfterRemovingItem(t *testing.T) {
	cart := domain.Cart{
		Items: []domain.CartItem{
			{PartID: 2, UnitPriceCents: 5000, Quantity: 1},
		},
	}

	totals := cart.Totals()

	assert.Equal(t, int64(5000), totals.SubtotalCents)
	assert.Equal(t, int64(1000), totals.TaxCents)
	assert.Equal(t, int64(6000), totals.TotalCents)
}

func TestCartTotals_EmptyCart(t *testing.T) {
	totals := domain.Cart{}.Totals()

	assert.Equal(t, int64(0), totals.SubtotalCents)
	assert.Equal(t, int64(0), totals.TaxCents)
	assert.Equal(t, int64(0), totals.TotalCents)
	assert.Equal(t, 0, totals.ItemCount)
}

func TestCartTotals_Deterministic(t *testing.T) {
	cart := domain.Cart{
		Items: []domain.CartItem{
			{PartID: 1, UnitPriceCents: 333, Quantity: 3},
			{PartID: 2, UnitPriceCents: 101, Quantity: 7},
		},
	}

	assert.Equal(t, cart.Totals(), cart.Totals())
}

func TestRoundTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"rounds half up", 8998, 1800},
		{"exact fifth", 5000, 1000},
		{"one cent", 1, 0},
		{"three cents", 3, 1},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.RoundTax(tt.subtotal))
		})
	}
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 3, domain.ClampQuantity(3, 10))
	assert.Equal(t, 10, domain.ClampQuantity(15, 10))
	assert.Equal(t, 0, domain.ClampQuantity(5, 0))
	assert.Equal(t, -1, domain.ClampQuantity(-1, 10))
}
