package repositories

import (
	"fmt"

	"livemart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{
		db: db,
	}
}

// Create appends a notification to a user's inbox.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetByUser retrieves all of a user's notifications, newest first.
func (r *GORMNotificationRepository) GetByUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Order("created_at DESC").Find(&notifications, "user_id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// GetUnreadByUser retrieves a user's unread notifications, newest first.
func (r *GORMNotificationRepository) GetUnreadByUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Order("created_at DESC").
		Find(&notifications, "user_id = ? AND is_read = ?", userID, false).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get unread notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// CountUnread counts a user's unread notifications.
func (r *GORMNotificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for user %s: %w", userID, err)
	}
	return count, nil
}

// MarkRead flips a single notification's read flag.
func (r *GORMNotificationRepository) MarkRead(id string) error {
	res := r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification %s as read: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// MarkAllRead flips the read flag on everything in a user's inbox.
func (r *GORMNotificationRepository) MarkAllRead(userID string) error {
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read for user %s: %w", userID, err)
	}
	return nil
}
