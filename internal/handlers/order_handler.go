package handlers

import (
	"log"
	"time"

	"livemart/internal/models"
	"livemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the buyer-facing order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// RegisterB2BRoutes registers the retailer-to-wholesaler marketplace route.
func (h *OrderHandler) RegisterB2BRoutes(router fiber.Router) {
	router.Post("/b2b/orders", h.HandleCreateB2BOrder)
}

// RegisterSellerRoutes registers the seller order listing.
func (h *OrderHandler) RegisterSellerRoutes(router fiber.Router) {
	router.Get("/orders/received", h.HandleGetSellerOrders)
}

// RegisterAdminRoutes registers the admin order surface.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleGetAllOrders)
	router.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetMyOrders retrieves the caller's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetUserOrders(currentUserID(c))
	if err != nil {
		log.Printf("Error getting user orders: %v", err)
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one of the caller's orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderForUser(orderID, currentUserID(c))
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleCreateOrder converts the caller's cart into an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var body struct {
		PaymentMethod       string `json:"payment_method" validate:"required"`
		SpecialInstructions string `json:"special_instructions"`
		DeliveryDate        string `json:"delivery_date"` // YYYY-MM-DD, optional
	}
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "payment_method is required",
		})
	}

	method := models.PaymentMethod(body.PaymentMethod)
	if !method.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown payment method " + body.PaymentMethod,
		})
	}

	deliveryDate, err := parseDeliveryDate(body.DeliveryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "delivery_date must be YYYY-MM-DD",
			"error":   err.Error(),
		})
	}

	order, err := h.service.CreateOrder(currentUserID(c), method, body.SpecialInstructions, deliveryDate)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return respondError(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleCreateB2BOrder places a single-product wholesale order, bypassing
// the cart.
func (h *OrderHandler) HandleCreateB2BOrder(c *fiber.Ctx) error {
	var body struct {
		ProductID           string `json:"product_id" validate:"required,uuid"`
		Quantity            int    `json:"quantity" validate:"required,gte=1"`
		SpecialInstructions string `json:"special_instructions"`
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

	order, err := h.service.CreateB2BOrder(currentUserID(c), body.ProductID, body.Quantity, body.SpecialInstructions)
	if err != nil {
		log.Printf("Error creating B2B order: %v", err)
		return respondError(c, err, "Could not create B2B order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetSellerOrders retrieves orders containing the caller's products.
func (h *OrderHandler) HandleGetSellerOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetSellerOrders(currentUserID(c))
	if err != nil {
		log.Printf("Error getting seller orders: %v", err)
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetAllOrders retrieves every order (admin).
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleUpdateOrderStatus overwrites an order's status (admin).
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.UpdateOrderStatus(orderID, models.OrderStatus(body.Status))
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return respondError(c, err, "Could not update order status")
	}
	return c.JSON(order)
}

// parseDeliveryDate parses an optional YYYY-MM-DD date.
func parseDeliveryDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
