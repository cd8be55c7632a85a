package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type Cart struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ID             uint `gorm:"primaryKey"`
	CartID         uint `gorm:"not null;index:idx_cart_part,unique"`
	PartID         uint `gorm:"not null;index:idx_cart_part,unique"`
	Name           string
	UnitPriceCents int64 `gorm:"not null"`
	Quantity       int   `gorm:"not null"`
	StockCeiling   int   `gorm:"not null"`
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CartDAO struct {
	db *gorm.DB
}

func NewCartDAO(db *gorm.DB) *CartDAO {
	return &CartDAO{
		db: db,
	}
}

// EnsureCart returns the user's cart, creating an empty one on first use.
func (d *CartDAO) EnsureCart(ctx context.Context, userID uint) (Cart, error) {
	var cart Cart
	err := d.db.WithContext(ctx).Preload("Items").First(&cart, "user_id = ?", userID).Error
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Cart{}, err
	}

	cart = Cart{UserID: userID}
	if err := d.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return Cart{}, err
	}
	return cart, nil
}

func (d *CartDAO) FindItem(ctx context.Context, cartID, partID uint) (CartItem, error) {
	var item CartItem
	result := d.db.WithContext(ctx).First(&item, "cart_id = ? AND part_id = ?", cartID, partID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CartItem{}, ErrCartItemNotFound
		}
		return CartItem{}, result.Error
	}
	return item, nil
}

func (d *CartDAO) UpsertItem(ctx context.Context, item CartItem) (CartItem, error) {
	existing, err := d.FindItem(ctx, item.CartID, item.PartID)
	if err != nil {
		if !errors.Is(err, ErrCartItemNotFound) {
			return CartItem{}, err
		}
		if err := d.db.WithContext(ctx).Create(&item).Error; err != nil {
			return CartItem{}, err
		}
		return item, nil
	}

	existing.Quantity = item.Quantity
	existing.UnitPriceCents = item.UnitPriceCents
	existing.StockCeiling = item.StockCeiling
	if err := d.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return CartItem{}, err
	}
	return existing, nil
}

func (d *CartDAO) DeleteItem(ctx context.Context, cartID, partID uint) error {
	result := d.db.WithContext(ctx).
		Where("cart_id = ? AND part_id = ?", cartID, partID).
		Delete(&CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (d *CartDAO) ClearCart(ctx context.Context, cartID uint) error {
	return d.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&CartItem{}).Error
}
