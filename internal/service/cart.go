package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository"
)

var (
	ErrCartItemNotFound = repository.ErrCartItemNotFound
	ErrOutOfStock       = errors.New("part is out of stock")
)

type CartRepository interface {
	GetCart(ctx context.Context, userID uint) (domain.Cart, error)
	FindItem(ctx context.Context, cartID, partID uint) (domain.CartItem, error)
	SaveItem(ctx context.Context, item domain.CartItem, cartID uint) (domain.CartItem, error)
	RemoveItem(ctx context.Context, cartID, partID uint) error
	Clear(ctx context.Context, cartID uint) error
}

type CartPartFinder interface {
	FindPartByID(ctx context.Context, id uint) (domain.Part, error)
}

type CartService struct {
	repo  CartRepository
	parts CartPartFinder
}

func NewCartService(repo CartRepository, parts CartPartFinder) *CartService {
	return &CartService{
		repo:  repo,
		parts: parts,
	}
}

// CartView bundles the cart with its derived totals so handlers never
// compute money themselves.
type CartView struct {
	Cart   domain.Cart       `json:"cart"`
	Totals domain.CartTotals `json:"totals"`
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (CartView, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return CartView{}, fmt.Errorf("s.repo.GetCart -> %w", err)
	}

	return CartView{Cart: cart, Totals: cart.Totals()}, nil
}

// AddItem adds a part to the cart, merging with an existing line. The
// resulting quantity is clamped to the part's current stock; a part with no
// stock at all is rejected outright.
func (s *CartService) AddItem(ctx context.Context, userID, partID uint, quantity int) (CartView, error) {
	if quantity <= 0 {
		quantity = 1
	}

	part, err := s.parts.FindPartByID(ctx, partID)
	if err != nil {
		return CartView{}, fmt.Errorf("s.parts.FindPartByID -> %w", err)
	}
	if part.StockQuantity <= 0 {
		return CartView{}, ErrOutOfStock
	}

	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return CartView{}, fmt.Errorf("s.repo.GetCart -> %w", err)
	}

	existing, err := s.repo.FindItem(ctx, cart.ID, partID)
	if err != nil && !errors.Is(err, ErrCartItemNotFound) {
		return CartView{}, fmt.Errorf("s.repo.FindItem -> %w", err)
	}

	wanted := existing.Quantity + quantity
	item := domain.CartItem{
		PartID:         part.ID,
		Name:           part.Name,
		UnitPriceCents: part.PriceCents,
		Quantity:       domain.ClampQuantity(wanted, part.StockQuantity),
		StockCeiling:   part.StockQuantity,
		ImageURL:       part.ImageURL,
	}
	if _, err := s.repo.SaveItem(ctx, item, cart.ID); err != nil {
		return CartView{}, fmt.Errorf("s.repo.SaveItem -> %w", err)
	}

	return s.GetCart(ctx, userID)
}

// UpdateQuantity sets the quantity of an existing line. Zero or less removes
// the line; anything above current stock is clamped down to it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, partID uint, quantity int) (CartView, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return CartView{}, fmt.Errorf("s.repo.GetCart -> %w", err)
	}

	if quantity <= 0 {
		return s.removeFromCart(ctx, userID, cart.ID, partID)
	}

	existing, err := s.repo.FindItem(ctx, cart.ID, partID)
	if err != nil {
		return CartView{}, fmt.Errorf("s.repo.FindItem -> %w", err)
	}

	part, err := s.parts.FindPartByID(ctx, partID)
	if err != nil {
		return CartView{}, fmt.Errorf("s.parts.FindPartByID -> %w", err)
	}

	existing.Quantity = domain.ClampQuantity(quantity, part.StockQuantity)
	existing.StockCeiling = part.StockQuantity
	if existing.Quantity <= 0 {
		return s.removeFromCart(ctx, userID, cart.ID, partID)
	}

	if _, err := s.repo.SaveItem(ctx, existing, cart.ID); err != nil {
		return CartView{}, fmt.Errorf("s.repo.SaveItem -> %w", err)
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, partID uint) (CartView, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return CartView{}, fmt.Errorf("s.repo.GetCart -> %w", err)
	}

	return s.removeFromCart(ctx, userID, cart.ID, partID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.GetCart -> %w", err)
	}

	if err := s.repo.Clear(ctx, cart.ID); err != nil {
		return fmt.Errorf("s.repo.Clear -> %w", err)
	}
	return nil
}

func (s *CartService) removeFromCart(ctx context.Context, userID, cartID, partID uint) (CartView, error) {
	if err := s.repo.RemoveItem(ctx, cartID, partID); err != nil {
		return CartView{}, fmt.Errorf("s.repo.RemoveItem -> %w", err)
	}

	return s.GetCart(ctx, userID)
}
