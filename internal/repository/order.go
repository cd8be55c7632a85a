package repository

import (
	"context"
	"fmt"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository/dao"
)

var (
	ErrOrderNotFound     = dao.ErrOrderNotFound
	ErrInsufficientStock = dao.ErrInsufficientStock
)

type OrderDAO interface {
	InsertWithItems(ctx context.Context, order dao.Order, items []dao.OrderItem, cartID uint) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Order, error)
	FindAll(ctx context.Context) ([]dao.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

// Create persists the order and its items atomically, clearing the source
// cart in the same transaction.
func (r *OrderRepository) Create(ctx context.Context, order domain.Order, cartID uint) (domain.Order, error) {
	daoItems := make([]dao.OrderItem, len(order.Items))
	for i, item := range order.Items {
		daoItems[i] = dao.OrderItem{
			PartID:         item.PartID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		}
	}

	created, err := r.dao.InsertWithItems(ctx, dao.Order{
		Number:        order.Number,
		UserID:        order.UserID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		ShippingLine:  order.ShippingLine,
		City:          order.City,
		PostalCode:    order.PostalCode,
		SubtotalCents: order.SubtotalCents,
		TaxCents:      order.TaxCents,
		TotalCents:    order.TotalCents,
		Status:        string(domain.OrderPending),
	}, daoItems, cartID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.InsertWithItems -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Order, error) {
	orders, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daosToDomain(orders), nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(orders), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}
	return nil
}

func (r *OrderRepository) daosToDomain(orders []dao.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		out[i] = r.daoToDomain(o)
	}
	return out
}

func (r *OrderRepository) daoToDomain(o dao.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = domain.OrderItem{
			ID:             item.ID,
			OrderID:        item.OrderID,
			PartID:         item.PartID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		}
	}

	return domain.Order{
		ID:            o.ID,
		Number:        o.Number,
		UserID:        o.UserID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		ShippingLine:  o.ShippingLine,
		City:          o.City,
		PostalCode:    o.PostalCode,
		SubtotalCents: o.SubtotalCents,
		TaxCents:      o.TaxCents,
		TotalCents:    o.TotalCents,
		Status:        domain.OrderStatus(o.Status),
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
