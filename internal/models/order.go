package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus tracks where an order is in its delivery lifecycle.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusProcessing     OrderStatus = "PROCESSING"
	StatusShipped        OrderStatus = "SHIPPED"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is how the buyer pays for an order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard      PaymentMethod = "DEBIT_CARD"
	PaymentUPI            PaymentMethod = "UPI"
	PaymentNetBanking     PaymentMethod = "NET_BANKING"
	PaymentOnline         PaymentMethod = "ONLINE"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentCreditCard, PaymentDebitCard,
		PaymentUPI, PaymentNetBanking, PaymentOnline:
		return true
	}
	return false
}

// Prepaid reports whether the method settles before delivery. Cash on
// delivery is the only method collected at the door.
func (m PaymentMethod) Prepaid() bool {
	return m != PaymentCashOnDelivery
}

// Order is an immutable snapshot of a purchase. Line prices are frozen at
// creation time and TotalAmount is the sum of price*quantity over the lines;
// only Status changes after the order is persisted.
type Order struct {
	ID                  string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber         string        `json:"order_number" gorm:"uniqueIndex;type:varchar(20)"`
	UserID              string        `json:"user_id" gorm:"index;type:varchar(36)"`
	Items               []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount         float64       `json:"total_amount"`
	Status              OrderStatus   `json:"status" gorm:"type:varchar(20)"`
	PaymentMethod       PaymentMethod `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentCompleted    bool          `json:"payment_completed"`
	SpecialInstructions string        `json:"special_instructions"`
	DeliveryDate        *time.Time    `json:"delivery_date"`
	gorm.Model                        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// OrderItem is one purchased line: product, quantity and the unit price at
// the moment the order was placed.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"index;type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Unit price at the time of order
}
