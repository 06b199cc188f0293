package models

import "gorm.io/gorm"

// Cart is the per-user mutable collection of pending purchases. It is
// created lazily on first access and survives sessions until cleared.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required,uuid"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItem is one (product, quantity) line in a cart. Quantity is at least 1;
// setting it to zero or below removes the line instead.
type CartItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CartID     string `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID  string `json:"product_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
