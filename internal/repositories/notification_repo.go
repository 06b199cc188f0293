package repositories

import (
	"livemart/internal/models"
)

// NotificationRepository defines the interface for the per-user inbox.
// Notifications are append-only; only the read flag ever changes.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByUser(userID string) ([]models.Notification, error)
	GetUnreadByUser(userID string) ([]models.Notification, error)
	CountUnread(userID string) (int64, error)
	MarkRead(id string) error
	MarkAllRead(userID string) error
}
