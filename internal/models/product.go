package models

import "time"

type Product struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index;not null" json:"salon_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`
	Active      bool   `gorm:"default:true" json:"active"`

	Variants []ProductVariant `gorm:"constraint:OnDelete:CASCADE;" json:"variants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductVariant struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`

	SKU        string `gorm:"size:50;uniqueIndex;not null" json:"sku"`
	Name       string `gorm:"size:100" json:"name"`
	PriceCents int64  `json:"price_cents"`
	StockQty   int    `json:"stock_qty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
