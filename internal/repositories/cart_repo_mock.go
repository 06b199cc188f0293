package repositories

import (
	"fmt"
	"sync"

	"livemart/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// Carts and items are stored separately so item lookups stay cheap.
type MockCartRepository struct {
	carts map[string]models.Cart     // keyed by cart ID
	items map[string]models.CartItem // keyed by item ID
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
		items: make(map[string]models.CartItem),
	}
}

// GetByUser returns a user's cart with its items.
func (r *MockCartRepository) GetByUser(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cart := range r.carts {
		if cart.UserID == userID {
			cart.Items = r.itemsOf(cart.ID)
			return &cart, nil
		}
	}
	return nil, fmt.Errorf("cart for user %s: %w", userID, models.ErrNotFound)
}

// itemsOf collects all lines of a cart. Callers must hold the lock.
func (r *MockCartRepository) itemsOf(cartID string) []models.CartItem {
	var lines []models.CartItem
	for _, item := range r.items {
		if item.CartID == cartID {
			lines = append(lines, item)
		}
	}
	return lines
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	r.carts[cart.ID] = *cart
	return nil
}

// GetItem returns a single cart item by its ID.
func (r *MockCartRepository) GetItem(itemID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}
	return &item, nil
}

// FindItem returns the line for a product in a cart, if any.
func (r *MockCartRepository) FindItem(cartID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("cart %s has no line for product %s: %w", cartID, productID, models.ErrNotFound)
}

// SaveItem inserts or updates a cart line.
func (r *MockCartRepository) SaveItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// DeleteItem removes a cart line.
func (r *MockCartRepository) DeleteItem(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return fmt.Errorf("cart item %s for deletion: %w", itemID, models.ErrNotFound)
	}
	delete(r.items, itemID)
	return nil
}

// ClearItems removes every line from a cart.
func (r *MockCartRepository) ClearItems(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

// snapshot copies the current state for transactional rollback in tests.
func (r *MockCartRepository) snapshot() (map[string]models.Cart, map[string]models.CartItem) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	carts := make(map[string]models.Cart, len(r.carts))
	for k, v := range r.carts {
		carts[k] = v
	}
	items := make(map[string]models.CartItem, len(r.items))
	for k, v := range r.items {
		items[k] = v
	}
	return carts, items
}

// restore replaces the current state with a previously taken snapshot.
func (r *MockCartRepository) restore(carts map[string]models.Cart, items map[string]models.CartItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = carts
	r.items = items
}
