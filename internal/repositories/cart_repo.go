package repositories

import (
	"livemart/internal/models"
)

// CartRepository defines the interface for cart data access. A user has at
// most one cart; GetByUser returns ErrNotFound until one is created.
type CartRepository interface {
	GetByUser(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	GetItem(itemID string) (*models.CartItem, error)
	FindItem(cartID, productID string) (*models.CartItem, error)
	SaveItem(item *models.CartItem) error
	DeleteItem(itemID string) error
	ClearItems(cartID string) error
}
