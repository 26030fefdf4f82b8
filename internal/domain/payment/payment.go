package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/salon-platform/internal/domain/shared"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

// ===============================
// Payment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func Confirm(p *models.Payment, now time.Time) error {
	if err := CanConfirm(Status(p.Status)); err != nil {
		return err
	}

	p.Status = string(StatusConfirmed)
	p.ConfirmedAt = &now
	return nil
}

func Fail(p *models.Payment) error {
	if Status(p.Status) != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	p.Status = string(StatusFailed)
	return nil
}

// NewReference builds the idempotent reference sent to the provider.
func NewReference() string {
	return fmt.Sprintf("PAY-%s", uuid.NewString()[:8])
}

// ===============================
// Events
// ===============================

const EventConfirmed = "payment.confirmed"

type Confirmed struct {
	shared.BaseEvent
	AmountCents int64 `json:"amount_cents"`
}

func NewConfirmed(paymentID, tenantID uint, amountCents int64) Confirmed {
	return Confirmed{
		BaseEvent:   shared.NewBaseEvent(EventConfirmed, "payment", paymentID, tenantID),
		AmountCents: amountCents,
	}
}
