package services

import (
	"fmt"

	"livemart/internal/models"
	"livemart/internal/repositories"
)

// NotificationService handles the per-user notification inbox.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

// Create appends a notification to a user's inbox.
func (s *NotificationService) Create(userID, title, message string, notificationType models.NotificationType, relatedOrderID string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:         userID,
		Title:          title,
		Message:        message,
		Type:           notificationType,
		RelatedOrderID: relatedOrderID,
	}
	if err := s.repo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// GetUserNotifications retrieves all of a user's notifications, newest first.
func (s *NotificationService) GetUserNotifications(userID string) ([]models.Notification, error) {
	return s.repo.GetByUser(userID)
}

// GetUnreadNotifications retrieves a user's unread notifications.
func (s *NotificationService) GetUnreadNotifications(userID string) ([]models.Notification, error) {
	return s.repo.GetUnreadByUser(userID)
}

// GetUnreadCount counts a user's unread notifications.
func (s *NotificationService) GetUnreadCount(userID string) (int64, error) {
	return s.repo.CountUnread(userID)
}

// MarkAsRead flips the read flag on one notification. The notification must
// belong to the caller.
func (s *NotificationService) MarkAsRead(userID, notificationID string) error {
	notifications, err := s.repo.GetByUser(userID)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if n.ID == notificationID {
			return s.repo.MarkRead(notificationID)
		}
	}
	return fmt.Errorf("notification %s for user %s: %w", notificationID, userID, models.ErrNotFound)
}

// MarkAllAsRead flips the read flag on everything in the user's inbox.
func (s *NotificationService) MarkAllAsRead(userID string) error {
	return s.repo.MarkAllRead(userID)
}
