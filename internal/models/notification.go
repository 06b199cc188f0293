package models

import "gorm.io/gorm"

// NotificationType classifies inbox entries so the consuming surface can
// render them differently.
type NotificationType string

const (
	NotificationOrderPlaced   NotificationType = "ORDER_PLACED"
	NotificationOrderReceived NotificationType = "ORDER_RECEIVED"
	NotificationOrderUpdate   NotificationType = "ORDER_UPDATE"
	NotificationGeneral       NotificationType = "GENERAL"
)

// Notification is one entry in a user's append-only inbox. The read flag is
// the only field that ever changes after creation.
type Notification struct {
	ID             string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string           `json:"user_id" gorm:"index;type:varchar(36)"`
	Title          string           `json:"title" gorm:"type:varchar(255)"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type" gorm:"type:varchar(30)"`
	RelatedOrderID string           `json:"related_order_id,omitempty" gorm:"type:varchar(36)"`
	Read           bool             `json:"read" gorm:"column:is_read"`
	gorm.Model                      // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
