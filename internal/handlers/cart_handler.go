package handlers

import (
	"log"

	"livemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the caller's cart, creating it on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetOrCreateCart(currentUserID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(cart)
}

// HandleAddItem adds a product to the caller's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"product_id" validate:"required,uuid"`
		Quantity  int    `json:"quantity" validate:"required,gte=1"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id and a quantity of at least 1 are required",
		})
	}

	cart, err := h.service.AddToCart(currentUserID(c), body.ProductID, body.Quantity)
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		return respondError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// HandleUpdateItem overwrites a cart line's quantity; zero or below removes
// the line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.service.UpdateItemQuantity(currentUserID(c), itemID, body.Quantity)
	if err != nil {
		log.Printf("Error updating cart item %s: %v", itemID, err)
		return respondError(c, err, "Could not update cart item")
	}
	return c.JSON(cart)
}

// HandleRemoveItem deletes a cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	cart, err := h.service.RemoveFromCart(currentUserID(c), itemID)
	if err != nil {
		log.Printf("Error removing cart item %s: %v", itemID, err)
		return respondError(c, err, "Could not remove cart item")
	}
	return c.JSON(cart)
}

// HandleClearCart removes every line from the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(currentUserID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return respondError(c, err, "Could not clear cart")
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
