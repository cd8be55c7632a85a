package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Order struct {
	ID            uint   `gorm:"primaryKey"`
	Number        string `gorm:"unique;not null"`
	UserID        uint   `gorm:"not null;index"`
	CustomerName  string `gorm:"not null"`
	CustomerEmail string `gorm:"not null"`
	ShippingLine  string
	City          string
	PostalCode    string
	SubtotalCents int64  `gorm:"not null"`
	TaxCents      int64  `gorm:"not null"`
	TotalCents    int64  `gorm:"not null"`
	Status        string `gorm:"not null;default:pending"`
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItem struct {
	ID             uint `gorm:"primaryKey"`
	OrderID        uint `gorm:"not null;index"`
	PartID         uint `gorm:"not null"`
	Name           string
	UnitPriceCents int64 `gorm:"not null"`
	Quantity       int   `gorm:"not null"`
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

// InsertWithItems creates the order, its items, decrements part stock and
// clears the cart — all inside one transaction. A line whose stock ran out
// since the cart was filled aborts the whole checkout.
func (d *OrderDAO) InsertWithItems(ctx context.Context, order Order, items []OrderItem, cartID uint) (Order, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := decrementStock(tx, items[i].PartID, items[i].Quantity); err != nil {
				return err
			}
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		return tx.Where("cart_id = ?", cartID).Delete(&CartItem{}).Error
	})
	if err != nil {
		return Order{}, err
	}

	order.Items = items
	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order
	result := d.db.WithContext(ctx).Preload("Items").First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}
		return Order{}, result.Error
	}
	return order, nil
}

func (d *OrderDAO) FindByUserID(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	result := d.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func (d *OrderDAO) FindAll(ctx context.Context) ([]Order, error) {
	var orders []Order
	result := d.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func (d *OrderDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
