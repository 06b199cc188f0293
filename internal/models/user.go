package models

import "gorm.io/gorm"

// UserRole identifies what a user can do in the marketplace.
type UserRole string

const (
	RoleCustomer   UserRole = "CUSTOMER"
	RoleRetailer   UserRole = "RETAILER"
	RoleWholesaler UserRole = "WHOLESALER"
	RoleAdmin      UserRole = "ADMIN"
)

// User represents an account in the marketplace. Sellers (retailers and
// wholesalers) are users too; retailers buy from wholesalers via B2B orders.
type User struct {
	ID         string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FullName   string   `json:"full_name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email      string   `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string   `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       UserRole `json:"role" gorm:"type:varchar(20)" validate:"required,oneof=CUSTOMER RETAILER WHOLESALER ADMIN"`
	City       string   `json:"city" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Enabled    bool     `json:"enabled"` // false until the OTP is verified
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
