package models

import "time"

// Raw client performance metric reported by the storefront.
type WebVital struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Metric    string  `gorm:"size:20;not null" json:"metric"`
	Value     float64 `json:"value"`
	Page      string  `gorm:"size:255" json:"page"`
	SessionID string  `gorm:"size:100" json:"session_id"`

	CreatedAt time.Time `json:"created_at"`
}
