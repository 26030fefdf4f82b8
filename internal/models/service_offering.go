package models

import "time"

type ServiceOffering struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index;not null" json:"salon_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	DurationMin int    `json:"duration_min"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `gorm:"size:50" json:"category"`
	Active      bool   `gorm:"default:true" json:"active"`

	DepositRequired bool  `gorm:"default:false" json:"deposit_required"`
	DepositCents    int64 `json:"deposit_cents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
