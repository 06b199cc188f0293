package services

import (
	"fmt"

	"livemart/internal/models"
	"livemart/internal/repositories"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductsBySeller retrieves the catalog of one seller.
func (s *ProductService) GetProductsBySeller(sellerID string) ([]models.Product, error) {
	return s.repo.GetBySeller(sellerID)
}

// CreateProduct creates a new product. New products are available unless the
// seller says otherwise later.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.Available = true
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// RestockProduct adds quantity to a product's stock.
func (s *ProductService) RestockProduct(id string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("restock quantity must be positive, got %d", quantity)
	}
	return s.repo.IncrementStock(id, quantity)
}

// ReduceStock subtracts quantity from a product's stock. The decrement is a
// single conditional operation in the repository, so stock can never go
// negative even under concurrent callers.
func (s *ProductService) ReduceStock(id string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("reduce quantity must be positive, got %d", quantity)
	}
	return s.repo.DecrementStock(id, quantity)
}
