package models

import "time"

type Order struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	SalonID    uint `gorm:"index;not null" json:"salon_id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`

	Number string `gorm:"size:20;uniqueIndex;not null" json:"number"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	SubtotalCents int64 `json:"subtotal_cents"`
	TotalCents    int64 `json:"total_cents"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	PaidAt      *time.Time `json:"paid_at"`
	FulfilledAt *time.Time `json:"fulfilled_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem snapshots the variant price at checkout time.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index;not null" json:"order_id"`

	ProductVariantID uint   `json:"product_variant_id"`
	SKU              string `gorm:"size:50" json:"sku"`
	Name             string `gorm:"size:100" json:"name"`
	UnitPriceCents   int64  `json:"unit_price_cents"`
	Quantity         int    `json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
}
