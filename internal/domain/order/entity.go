package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/salon-platform/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func MarkPaid(o *models.Order, now time.Time) error {
	if err := CanMarkPaid(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusPaid)
	o.PaidAt = &now
	return nil
}

func Fulfill(o *models.Order, now time.Time) error {
	if err := CanFulfill(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusFulfilled)
	o.FulfilledAt = &now
	return nil
}

func Cancel(o *models.Order, now time.Time) error {
	if err := CanCancel(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusCancelled)
	o.CancelledAt = &now
	return nil
}

// ===============================
// Helpers
// ===============================

// NewNumber builds a short human-readable order number.
func NewNumber() string {
	return fmt.Sprintf("ORD-%s", uuid.NewString()[:8])
}

// Subtotal sums the item snapshots.
func Subtotal(items []models.OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total
}
