package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trottiparts/trottiparts-api/internal/cache"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository"
)

var (
	ErrOrderNotFound     = repository.ErrOrderNotFound
	ErrInsufficientStock = repository.ErrInsufficientStock
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrStatusLocked      = errors.New("order status can no longer change")
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order, cartID uint) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error
}

type OrderMailer interface {
	SendOrderConfirmation(order domain.Order)
}

type CheckoutInput struct {
	CustomerName  string
	CustomerEmail string
	ShippingLine  string
	City          string
	PostalCode    string
}

type OrderService struct {
	repo   OrderRepository
	carts  CartRepository
	mailer OrderMailer
	cache  Cache
}

func NewOrderService(repo OrderRepository, carts CartRepository, mailer OrderMailer, cache Cache) *OrderService {
	return &OrderService{
		repo:   repo,
		carts:  carts,
		mailer: mailer,
		cache:  cache,
	}
}

// Checkout turns the user's cart into an order. Order, items, stock
// decrements and the cart wipe all land in one transaction; a line whose
// stock ran out since it was added fails the whole checkout.
func (s *OrderService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (domain.Order, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.carts.GetCart -> %w", err)
	}
	if len(cart.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	totals := cart.Totals()
	items := make([]domain.OrderItem, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = domain.OrderItem{
			PartID:         line.PartID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		}
	}

	order := domain.Order{
		Number:        newOrderNumber(),
		UserID:        userID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		ShippingLine:  input.ShippingLine,
		City:          input.City,
		PostalCode:    input.PostalCode,
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
		Status:        domain.OrderPending,
		Items:         items,
	}

	created, err := s.repo.Create(ctx, order, cart.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.invalidateOrders(ctx, userID)

	// The confirmation mail must not hold up the checkout response; the
	// mailer detaches from the request context itself.
	go s.mailer.SendOrderConfirmation(created)

	return created, nil
}

func (s *OrderService) GetOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	key := userOrdersKey(userID)

	var orders []domain.Order
	if s.cache.Get(ctx, key, &orders) {
		return orders, nil
	}

	orders, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	if err := s.cache.Set(ctx, key, orders); err != nil {
		zap.L().Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return orders, nil
}

// GetOrder returns one of the user's own orders. Someone else's order is
// indistinguishable from a missing one.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if order.UserID != userID {
		return domain.Order{}, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	key := adminOrdersKey()

	var orders []domain.Order
	if s.cache.Get(ctx, key, &orders) {
		return orders, nil
	}

	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	if err := s.cache.Set(ctx, key, orders); err != nil {
		zap.L().Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return orders, nil
}

// UpdateStatus changes an order's status optimistically. The cached admin
// listing is patched before the database write; if the write fails the
// pre-patch snapshot is restored verbatim and the error surfaces.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, to domain.OrderStatus) (domain.Order, error) {
	if !to.IsValid() {
		return domain.Order{}, ErrInvalidStatus
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if order.Status.IsTerminal() {
		return domain.Order{}, ErrStatusLocked
	}

	mutation := domain.NewStatusMutation(orderID, order.Status, to)
	key := adminOrdersKey()

	var cached []domain.Order
	patching := s.cache.Get(ctx, key, &cached)
	if patching {
		if err := s.cache.Set(ctx, key, mutation.Apply(cached)); err != nil {
			zap.L().Warn("optimistic patch failed", zap.String("key", key), zap.Error(err))
			patching = false
		}
	} else {
		mutation.Apply(nil)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, to); err != nil {
		if snapshot := mutation.Rollback(); patching && snapshot != nil {
			if rbErr := s.cache.Set(ctx, key, snapshot); rbErr != nil {
				zap.L().Warn("optimistic rollback failed", zap.String("key", key), zap.Error(rbErr))
			}
		}
		return domain.Order{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	mutation.Commit()
	s.invalidateOrders(ctx, order.UserID)

	order.Status = to
	return order, nil
}

func (s *OrderService) invalidateOrders(ctx context.Context, userID uint) {
	keys := []string{adminOrdersKey(), userOrdersKey(userID)}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		zap.L().Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func adminOrdersKey() string {
	return cache.Key("orders", "admin")
}

func userOrdersKey(userID uint) string {
	return cache.Key("orders", "user", strconv.FormatUint(uint64(userID), 10))
}

// newOrderNumber builds a short human-quotable reference like TP-7F3A2C1B.
func newOrderNumber() string {
	id := uuid.NewString()
	return "TP-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
