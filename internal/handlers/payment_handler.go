package handlers

import (
	"fmt"
	"log"

	"livemart/internal/models"
	"livemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler drives the demo online payment flow: create a pending
// payment, verify it, and only then place the order.
type PaymentHandler struct {
	paymentService *services.PaymentService
	orderService   *services.OrderService
	validate       *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *services.PaymentService, orderService *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orderService:   orderService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payment")
	paymentRoutes.Post("/create-order", h.HandleCreatePendingPayment)
	paymentRoutes.Post("/verify", h.HandleVerifyPayment)
}

// HandleCreatePendingPayment registers a payment attempt and returns its
// reference for the client-side gateway widget.
func (h *PaymentHandler) HandleCreatePendingPayment(c *fiber.Ctx) error {
	var body struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A positive amount is required",
		})
	}

	paymentRef := h.paymentService.CreatePendingPayment(body.Amount)
	return c.JSON(fiber.Map{
		"orderId":  paymentRef,
		"amount":   body.Amount,
		"currency": "INR",
	})
}

// HandleVerifyPayment checks the payment and, only on success, converts the
// caller's cart into an ONLINE order. A failed verification mutates nothing.
func (h *PaymentHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	var body struct {
		OrderID             string `json:"orderId" validate:"required"`
		PaymentID           string `json:"paymentId" validate:"required"`
		SpecialInstructions string `json:"specialInstructions"`
		DeliveryDate        string `json:"deliveryDate"` // YYYY-MM-DD, optional
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "orderId and paymentId are required",
		})
	}

	if !h.paymentService.Verify(body.OrderID, body.PaymentID) {
		err := fmt.Errorf("payment %s: %w", body.OrderID, models.ErrPaymentVerificationFailed)
		log.Printf("Payment verification failed: %v", err)
		return respondError(c, err, "Payment verification failed")
	}

	deliveryDate, err := parseDeliveryDate(body.DeliveryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "deliveryDate must be YYYY-MM-DD",
			"error":   err.Error(),
		})
	}

	order, err := h.orderService.CreateOrder(currentUserID(c), models.PaymentOnline, body.SpecialInstructions, deliveryDate)
	if err != nil {
		log.Printf("Error placing order after payment: %v", err)
		return respondError(c, err, "Could not place order")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"orderNumber": order.OrderNumber,
	})
}
