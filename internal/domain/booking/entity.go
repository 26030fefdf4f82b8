package booking

import (
	"time"

	"github.com/glowbook/salon-platform/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func MarkNoShow(b *models.Booking, now time.Time) error {
	if err := CanMarkNoShow(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusNoShow)
	b.NoShowAt = &now
	return nil
}
