package services

import (
	"errors"
	"fmt"

	"livemart/internal/models"
	"livemart/internal/repositories"
)

// CartService handles business logic for the per-user cart aggregate.
//
// Stock checks read the current catalog value at call time; there is no
// reservation, so the order workflow re-checks stock at commit time.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOrCreateCart returns the user's cart, creating an empty one on first
// access.
func (s *CartService) GetOrCreateCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	cart = &models.Cart{UserID: userID}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddToCart inserts a line for the product or increments an existing one.
// The stock check is cumulative: existing line quantity plus the new
// quantity must fit in current stock.
func (s *CartService) AddToCart(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	cart, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItem(cart.ID, productID)
	switch {
	case err == nil:
		newQuantity := item.Quantity + quantity
		if product.StockQuantity < newQuantity {
			return nil, fmt.Errorf("product %s (in cart %d, adding %d, available %d): %w",
				product.Name, item.Quantity, quantity, product.StockQuantity, models.ErrInsufficientStock)
		}
		item.Quantity = newQuantity
		if err := s.cartRepo.SaveItem(item); err != nil {
			return nil, err
		}
	case errors.Is(err, models.ErrNotFound):
		if product.StockQuantity < quantity {
			return nil, fmt.Errorf("product %s (requested %d, available %d): %w",
				product.Name, quantity, product.StockQuantity, models.ErrInsufficientStock)
		}
		newItem := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.SaveItem(newItem); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.cartRepo.GetByUser(userID)
}

// UpdateItemQuantity overwrites a line's quantity. A quantity of zero or
// below removes the line. The line must belong to the caller's cart.
func (s *CartService) UpdateItemQuantity(userID, itemID string, quantity int) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, fmt.Errorf("cart item %s does not belong to user %s: %w", itemID, userID, models.ErrUnauthorized)
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(itemID); err != nil {
			return nil, err
		}
		return s.cartRepo.GetByUser(userID)
	}

	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < quantity {
		return nil, fmt.Errorf("product %s (requested %d, available %d): %w",
			product.Name, quantity, product.StockQuantity, models.ErrInsufficientStock)
	}

	item.Quantity = quantity
	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUser(userID)
}

// RemoveFromCart deletes a line unconditionally. The line must belong to the
// caller's cart.
func (s *CartService) RemoveFromCart(userID, itemID string) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, fmt.Errorf("cart item %s does not belong to user %s: %w", itemID, userID, models.ErrUnauthorized)
	}

	if err := s.cartRepo.DeleteItem(itemID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUser(userID)
}

// ClearCart removes every line from the user's cart.
func (s *CartService) ClearCart(userID string) error {
	cart, err := s.GetOrCreateCart(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearItems(cart.ID)
}
