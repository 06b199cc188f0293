package services_test

import (
	"testing"

	"livemart/internal/models"
	"livemart/internal/repositories"
	"livemart/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockCartRepository, *repositories.MockProductRepository) {
	t.Helper()
	cartRepo := repositories.NewMockCartRepository()
	productRepo := repositories.NewMockProductRepository()
	return services.NewCartService(cartRepo, productRepo), cartRepo, productRepo
}

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, id string, price float64, stock int) {
	t.Helper()
	err := repo.Create(&models.Product{
		ID:            id,
		Name:          "Product " + id,
		Category:      "general",
		Price:         price,
		StockQuantity: stock,
		SellerID:      "seller-1",
		Available:     true,
	})
	assert.NoError(t, err)
}

func TestCartService_GetOrCreateCart(t *testing.T) {
	service, _, _ := newCartFixture(t)

	cart, err := service.GetOrCreateCart("user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.Equal(t, "user-1", cart.UserID)

	// Second access returns the same cart, not a new one.
	again, err := service.GetOrCreateCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartService_AddToCart_AccumulatesQuantity(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "prod-1", 10.0, 5)

	cart, err := service.AddToCart("user-1", "prod-1", 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Adding the same product again increments the existing line.
	cart, err = service.AddToCart("user-1", "prod-1", 3)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddToCart_CumulativeStockCheck(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "prod-1", 10.0, 5)

	cart, err := service.AddToCart("user-1", "prod-1", 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	// 4 already in the cart plus 2 more exceeds the stock of 5.
	_, err = service.AddToCart("user-1", "prod-1", 2)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	// The failed add leaves the earlier line intact.
	cart, err = service.GetOrCreateCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	service, _, _ := newCartFixture(t)

	_, err := service.AddToCart("user-1", "missing", 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "prod-1", 10.0, 5)

	cart, err := service.AddToCart("user-1", "prod-1", 2)
	assert.NoError(t, err)
	itemID := cart.Items[0].ID

	// Overwrite within stock.
	cart, err = service.UpdateItemQuantity("user-1", itemID, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Exceeding stock fails and leaves the line untouched.
	_, err = service.UpdateItemQuantity("user-1", itemID, 6)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	cart, err = service.GetOrCreateCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Zero removes the line.
	cart, err = service.UpdateItemQuantity("user-1", itemID, 0)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_UpdateItemQuantity_OwnershipEnforced(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "prod-1", 10.0, 5)

	cart, err := service.AddToCart("user-1", "prod-1", 2)
	assert.NoError(t, err)
	itemID := cart.Items[0].ID

	// A different user may not touch this line.
	_, err = service.UpdateItemQuantity("user-2", itemID, 1)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = service.RemoveFromCart("user-2", itemID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, "prod-1", 10.0, 5)
	seedProduct(t, productRepo, "prod-2", 5.0, 5)

	cart, err := service.AddToCart("user-1", "prod-1", 1)
	assert.NoError(t, err)
	_, err = service.AddToCart("user-1", "prod-2", 1)
	assert.NoError(t, err)

	cart, err = service.RemoveFromCart("user-1", cart.Items[0].ID)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	assert.NoError(t, service.ClearCart("user-1"))
	cart, err = service.GetOrCreateCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}
