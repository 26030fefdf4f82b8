package models

import "time"

// A Payment row backs either a booking deposit or an order checkout,
// never both.
type Payment struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index;not null" json:"salon_id"`

	BookingID *uint `gorm:"index" json:"booking_id"`
	OrderID   *uint `gorm:"index" json:"order_id"`

	Reference   string `gorm:"size:50;uniqueIndex;not null" json:"reference"`
	Provider    string `gorm:"size:20;default:'mercadopago'" json:"provider"`
	ProviderRef string `gorm:"size:100" json:"provider_ref"`
	CheckoutURL string `gorm:"size:512" json:"checkout_url"`

	AmountCents int64  `json:"amount_cents"`
	Status      string `gorm:"size:20;default:'pending'" json:"status"`

	ConfirmedAt *time.Time `json:"confirmed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
