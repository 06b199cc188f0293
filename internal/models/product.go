package models

import "gorm.io/gorm"

// Product represents a catalog entry offered by a seller. Stock is the
// single source of truth for availability checks; it must never go negative.
type Product struct {
	ID                   string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name                 string  `json:"name" validate:"required,min=3,max=100"`
	Description          string  `json:"description" validate:"omitempty,max=500"`
	Category             string  `json:"category" gorm:"type:varchar(100)" validate:"required,max=100"`
	Price                float64 `json:"price" validate:"required,gt=0"`
	StockQuantity        int     `json:"stock_quantity" validate:"gte=0"`
	ImageURL             string  `json:"image_url" validate:"omitempty,url"`
	SellerID             string  `json:"seller_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Available            bool    `json:"available"`
	ManufacturingCountry string  `json:"manufacturing_country" gorm:"type:varchar(100)"`
	gorm.Model                   // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// BeforeCreate fills defaults the way the catalog expects them.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ManufacturingCountry == "" {
		p.ManufacturingCountry = "India"
	}
	return nil
}
