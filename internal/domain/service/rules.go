package service

import (
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

// ===============================
// Offering invariants
// ===============================

// Validate enforces the offering rules: positive duration, non-negative
// price, and a deposit amount whenever a deposit is flagged.
func Validate(s *models.ServiceOffering) error {
	if s.DurationMin <= 0 {
		return httperr.ErrBusiness("invalid_duration")
	}
	if s.PriceCents < 0 {
		return httperr.ErrBusiness("invalid_price")
	}
	if s.DepositRequired && s.DepositCents <= 0 {
		return httperr.ErrBusiness("deposit_amount_required")
	}
	if !s.DepositRequired && s.DepositCents != 0 {
		return httperr.ErrBusiness("deposit_not_enabled")
	}
	return nil
}
