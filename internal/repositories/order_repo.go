package repositories

import (
	"livemart/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// immutable once created except for their status.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetByProducts(productIDs []string) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
}
