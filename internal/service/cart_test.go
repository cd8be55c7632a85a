package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type fakeCartRepo struct {
	items map[uint]domain.CartItem // keyed by part ID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uint]domain.CartItem)}
}

func (f *fakeCartRepo) GetCart(_ context.Context, userID uint) (domain.Cart, error) {
	cart := domain.Cart{ID: 1, UserID: userID}
	for _, item := range f.items {
		item.LineTotalCents = item.UnitPriceCents * int64(item.Quantity)
		cart.Items = append(cart.Items, item)
	}
	return cart, nil
}

func (f *fakeCartRepo) FindItem(_ context.Context, _, partID uint) (domain.CartItem, error) {
	item, ok := f.items[partID]
	if !ok {
		return domain.CartItem{}, service.ErrCartItemNotFound
	}
	return item, nil
}

func (f *fakeCartRepo) SaveItem(_ context.Context, item domain.CartItem, _ uint) (domain.CartItem, error) {
	f.items[item.PartID] = item
	return item, nil
}

func (f *fakeCartRepo) RemoveItem(_ context.Context, _, partID uint) error {
	if _, ok := f.items[partID]; !ok {
		return service.ErrCartItemNotFound
	}
	delete(f.items, partID)
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, _ uint) error {
	f.items = make(map[uint]domain.CartItem)
	return nil
}

type fakePartFinder struct {
	parts map[uint]domain.Part
}

func (f *fakePartFinder) FindPartByID(_ context.Context, id uint) (domain.Part, error) {
	part, ok := f.parts[id]
	if !ok {
		return domain.Part{}, service.ErrPartNotFound
	}
	return part, nil
}

func newCartFixture() (*service.CartService, *fakeCartRepo) {
	repo := newFakeCartRepo()
	parts := &fakePartFinder{parts: map[uint]domain.Part{
		1: {ID: 1, Name: "Frein avant", PriceCents: 1999, StockQuantity: 5},
		2: {ID: 2, Name: "Batterie 36V", PriceCents: 5000, StockQuantity: 1},
		3: {ID: 3, Name: "Pneu plein", PriceCents: 2500, StockQuantity: 0},
	}}
	return service.NewCartService(repo, parts), repo
}

func TestCartAddItem(t *testing.T) {
	svc, _ := newCartFixture()

	view, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	require.Len(t, view.Cart.Items, 1)
	assert.Equal(t, 2, view.Cart.Items[0].Quantity)
	assert.Equal(t, int64(3998), view.Totals.SubtotalCents)
	assert.Equal(t, int64(800), view.Totals.TaxCents)
	assert.Equal(t, int64(4798), view.Totals.TotalCents)
}

func TestCartAddItem_ClampsToStock(t *testing.T) {
	svc, _ := newCartFixture()

	view, err := svc.AddItem(context.Background(), 1, 2, 10)
	require.NoError(t, err)

	require.Len(t, view.Cart.Items, 1)
	assert.Equal(t, 1, view.Cart.Items[0].Quantity)
}

func TestCartAddItem_MergesExistingLine(t *testing.T) {
	svc, _ := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	view, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	require.Len(t, view.Cart.Items, 1)
	assert.Equal(t, 4, view.Cart.Items[0].Quantity)
}

func TestCartAddItem_OutOfStock(t *testing.T) {
	svc, repo := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 3, 1)
	assert.ErrorIs(t, err, service.ErrOutOfStock)
	assert.Empty(t, repo.items)
}

func TestCartAddItem_UnknownPart(t *testing.T) {
	svc, _ := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 99, 1)
	assert.ErrorIs(t, err, service.ErrPartNotFound)
}

func TestCartUpdateQuantity(t *testing.T) {
	svc, _ := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 1, 1)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(context.Background(), 1, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Cart.Items[0].Quantity)
}

func TestCartUpdateQuantity_ClampsToStock(t *testing.T) {
	svc, _ := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 1, 1)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(context.Background(), 1, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Cart.Items[0].Quantity)
}

func TestCartUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	svc, repo := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(context.Background(), 1, 1, 0)
	require.NoError(t, err)

	assert.Empty(t, view.Cart.Items)
	assert.Empty(t, repo.items)
	assert.Equal(t, int64(0), view.Totals.TotalCents)
}

func TestCartRemoveItem_RecomputesTotals(t *testing.T) {
	svc, _ := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 1, 2, 1)
	require.NoError(t, err)

	view, err := svc.RemoveItem(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), view.Totals.SubtotalCents)
	assert.Equal(t, int64(1000), view.Totals.TaxCents)
	assert.Equal(t, int64(6000), view.Totals.TotalCents)
}

func TestCartClear(t *testing.T) {
	svc, _ := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(context.Background(), 1))

	view, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, view.Cart.Items)
}
