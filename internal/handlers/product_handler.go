package handlers

import (
	"fmt"
	"log"

	"livemart/internal/models"
	"livemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only catalog routes.
func (h *ProductHandler) RegisterPublicRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterSellerRoutes registers the seller-scoped catalog mutations.
func (h *ProductHandler) RegisterSellerRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetMyProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/restock", h.HandleRestockProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleGetMyProducts retrieves the caller's own catalog.
func (h *ProductHandler) HandleGetMyProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProductsBySeller(currentUserID(c))
	if err != nil {
		log.Printf("Error getting seller products: %v", err)
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a new product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product.SellerID = currentUserID(c)
	if err := h.validate.Struct(product); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates a product the caller owns.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	existing, err := h.ownedProduct(c, productID)
	if err != nil {
		return respondError(c, err, "Could not update product")
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = productID
	product.SellerID = existing.SellerID

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", productID, err)
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product the caller owns.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if _, err := h.ownedProduct(c, productID); err != nil {
		return respondError(c, err, "Could not delete product")
	}

	if err := h.service.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return respondError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}

// HandleRestockProduct adds stock to a product the caller owns.
func (h *ProductHandler) HandleRestockProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if _, err := h.ownedProduct(c, productID); err != nil {
		return respondError(c, err, "Could not restock product")
	}

	var body struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity must be at least 1",
		})
	}

	if err := h.service.RestockProduct(productID, body.Quantity); err != nil {
		log.Printf("Error restocking product %s: %v", productID, err)
		return respondError(c, err, "Could not restock product")
	}

	product, err := h.service.GetProductByID(productID)
	if err != nil {
		return respondError(c, err, "Could not retrieve product after restock")
	}
	return c.JSON(product)
}

// ownedProduct loads a product and checks the caller owns it. Admins may
// touch any product.
func (h *ProductHandler) ownedProduct(c *fiber.Ctx, productID string) (*models.Product, error) {
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if currentRole(c) != models.RoleAdmin && product.SellerID != currentUserID(c) {
		return nil, fmt.Errorf("product %s is not owned by caller: %w", productID, models.ErrUnauthorized)
	}
	return product, nil
}
