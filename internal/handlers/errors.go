package handlers

import (
	"errors"

	"livemart/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a domain error onto an HTTP status and writes the
// standard error body. Anything outside the sentinel taxonomy is a 500.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidStatus):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, models.ErrAlreadyExists):
		status = fiber.StatusConflict
	case errors.Is(err, models.ErrPaymentVerificationFailed):
		status = fiber.StatusPaymentRequired
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// currentUserID extracts the authenticated user from the request context.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// currentRole extracts the authenticated user's role from the request context.
func currentRole(c *fiber.Ctx) models.UserRole {
	role, _ := c.Locals("role").(string)
	return models.UserRole(role)
}
