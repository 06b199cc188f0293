package handlers

import (
	"log"

	"livemart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for the caller's inbox.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notificationRoutes := router.Group("/notifications")
	notificationRoutes.Get("/", h.HandleGetNotifications)
	notificationRoutes.Get("/unread", h.HandleGetUnread)
	notificationRoutes.Get("/unread/count", h.HandleGetUnreadCount)
	notificationRoutes.Patch("/:id/read", h.HandleMarkAsRead)
	notificationRoutes.Post("/read-all", h.HandleMarkAllAsRead)
}

// HandleGetNotifications returns the caller's inbox, newest first.
func (h *NotificationHandler) HandleGetNotifications(c *fiber.Ctx) error {
	notifications, err := h.service.GetUserNotifications(currentUserID(c))
	if err != nil {
		log.Printf("Error getting notifications: %v", err)
		return respondError(c, err, "Could not retrieve notifications")
	}
	return c.JSON(notifications)
}

// HandleGetUnread returns the caller's unread notifications.
func (h *NotificationHandler) HandleGetUnread(c *fiber.Ctx) error {
	notifications, err := h.service.GetUnreadNotifications(currentUserID(c))
	if err != nil {
		log.Printf("Error getting unread notifications: %v", err)
		return respondError(c, err, "Could not retrieve notifications")
	}
	return c.JSON(notifications)
}

// HandleGetUnreadCount returns the caller's unread notification count.
func (h *NotificationHandler) HandleGetUnreadCount(c *fiber.Ctx) error {
	count, err := h.service.GetUnreadCount(currentUserID(c))
	if err != nil {
		log.Printf("Error counting unread notifications: %v", err)
		return respondError(c, err, "Could not count notifications")
	}
	return c.JSON(fiber.Map{
		"count": count,
	})
}

// HandleMarkAsRead flips one notification's read flag.
func (h *NotificationHandler) HandleMarkAsRead(c *fiber.Ctx) error {
	notificationID := c.Params("id")
	if err := h.service.MarkAsRead(currentUserID(c), notificationID); err != nil {
		log.Printf("Error marking notification %s as read: %v", notificationID, err)
		return respondError(c, err, "Could not mark notification as read")
	}
	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

// HandleMarkAllAsRead flips the read flag on the whole inbox.
func (h *NotificationHandler) HandleMarkAllAsRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllAsRead(currentUserID(c)); err != nil {
		log.Printf("Error marking notifications as read: %v", err)
		return respondError(c, err, "Could not mark notifications as read")
	}
	return c.JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}
