package repositories

import (
	"fmt"
	"sync"

	"livemart/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	return &product, nil
}

// GetBySeller returns all products owned by the given seller.
func (r *MockProductRepository) GetBySeller(sellerID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.ManufacturingCountry == "" {
		product.ManufacturingCountry = "India"
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product %s for update: %w", product.ID, models.ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product %s for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock checks and subtracts stock under one lock, mirroring the
// conditional UPDATE of the GORM implementation.
func (r *MockProductRepository) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	if product.StockQuantity < quantity {
		return fmt.Errorf("product %s (requested %d, available %d): %w",
			id, quantity, product.StockQuantity, models.ErrInsufficientStock)
	}
	product.StockQuantity -= quantity
	r.products[id] = product
	return nil
}

// IncrementStock adds quantity back to the product's stock.
func (r *MockProductRepository) IncrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product %s for restock: %w", id, models.ErrNotFound)
	}
	product.StockQuantity += quantity
	r.products[id] = product
	return nil
}

// snapshot copies the current state for transactional rollback in tests.
func (r *MockProductRepository) snapshot() map[string]models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]models.Product, len(r.products))
	for k, v := range r.products {
		copied[k] = v
	}
	return copied
}

// restore replaces the current state with a previously taken snapshot.
func (r *MockProductRepository) restore(state map[string]models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = state
}
