package repository

import (
	"context"
	"fmt"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository/dao"
)

var ErrCartItemNotFound = dao.ErrCartItemNotFound

type CartDAO interface {
	EnsureCart(ctx context.Context, userID uint) (dao.Cart, error)
	FindItem(ctx context.Context, cartID, partID uint) (dao.CartItem, error)
	UpsertItem(ctx context.Context, item dao.CartItem) (dao.CartItem, error)
	DeleteItem(ctx context.Context, cartID, partID uint) error
	ClearCart(ctx context.Context, cartID uint) error
}

type CartRepository struct {
	dao CartDAO
}

func NewCartRepository(dao CartDAO) *CartRepository {
	return &CartRepository{
		dao: dao,
	}
}

func (r *CartRepository) GetCart(ctx context.Context, userID uint) (domain.Cart, error) {
	cart, err := r.dao.EnsureCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("r.dao.EnsureCart -> %w", err)
	}

	return r.cartDaoToDomain(cart), nil
}

func (r *CartRepository) FindItem(ctx context.Context, cartID, partID uint) (domain.CartItem, error) {
	item, err := r.dao.FindItem(ctx, cartID, partID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("r.dao.FindItem -> %w", err)
	}

	return r.itemDaoToDomain(item), nil
}

func (r *CartRepository) SaveItem(ctx context.Context, item domain.CartItem, cartID uint) (domain.CartItem, error) {
	saved, err := r.dao.UpsertItem(ctx, dao.CartItem{
		CartID:         cartID,
		PartID:         item.PartID,
		Name:           item.Name,
		UnitPriceCents: item.UnitPriceCents,
		Quantity:       item.Quantity,
		StockCeiling:   item.StockCeiling,
		ImageURL:       item.ImageURL,
	})
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("r.dao.UpsertItem -> %w", err)
	}

	return r.itemDaoToDomain(saved), nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, partID uint) error {
	if err := r.dao.DeleteItem(ctx, cartID, partID); err != nil {
		return fmt.Errorf("r.dao.DeleteItem -> %w", err)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, cartID uint) error {
	if err := r.dao.ClearCart(ctx, cartID); err != nil {
		return fmt.Errorf("r.dao.ClearCart -> %w", err)
	}
	return nil
}

func (r *CartRepository) cartDaoToDomain(c dao.Cart) domain.Cart {
	items := make([]domain.CartItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = r.itemDaoToDomain(item)
	}

	return domain.Cart{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CartRepository) itemDaoToDomain(i dao.CartItem) domain.CartItem {
	return domain.CartItem{
		ID:             i.ID,
		PartID:         i.PartID,
		Name:           i.Name,
		UnitPriceCents: i.UnitPriceCents,
		Quantity:       i.Quantity,
		StockCeiling:   i.StockCeiling,
		ImageURL:       i.ImageURL,
		LineTotalCents: i.UnitPriceCents * int64(i.Quantity),
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
