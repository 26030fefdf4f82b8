package models

import "time"

type Cart struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	SalonID    uint `gorm:"index;not null" json:"salon_id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`

	Status string `gorm:"size:20;default:'open'" json:"status"`

	Items []CartItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	CartID uint `gorm:"index;not null" json:"cart_id"`

	ProductVariantID uint           `json:"product_variant_id"`
	ProductVariant   ProductVariant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product_variant"`

	Quantity int `json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
