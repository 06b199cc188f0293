package repositories

import (
	"livemart/internal/models"
)

// ProductRepository defines the interface for catalog data access.
//
// DecrementStock must be atomic with respect to concurrent callers: the
// check against current stock and the decrement happen as one conditional
// operation, so two purchases can never jointly overdraw a product.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySeller(sellerID string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	DecrementStock(id string, quantity int) error
	IncrementStock(id string, quantity int) error
}
