package booking

import (
	"time"

	"github.com/glowbook/salon-platform/internal/domain/shared"
)

const (
	EventCreated   = "booking.created"
	EventCancelled = "booking.cancelled"
	EventCompleted = "booking.completed"
	EventNoShow    = "booking.no_show"
)

type Created struct {
	shared.BaseEvent
	StaffID   uint      `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
}

func NewCreated(bookingID, tenantID, staffID uint, start time.Time) Created {
	return Created{
		BaseEvent: shared.NewBaseEvent(EventCreated, "booking", bookingID, tenantID),
		StaffID:   staffID,
		StartTime: start,
	}
}

type Cancelled struct {
	shared.BaseEvent
}

func NewCancelled(bookingID, tenantID uint) Cancelled {
	return Cancelled{
		BaseEvent: shared.NewBaseEvent(EventCancelled, "booking", bookingID, tenantID),
	}
}

type Completed struct {
	shared.BaseEvent
}

func NewCompleted(bookingID, tenantID uint) Completed {
	return Completed{
		BaseEvent: shared.NewBaseEvent(EventCompleted, "booking", bookingID, tenantID),
	}
}

type NoShow struct {
	shared.BaseEvent
}

func NewNoShow(bookingID, tenantID uint) NoShow {
	return NoShow{
		BaseEvent: shared.NewBaseEvent(EventNoShow, "booking", bookingID, tenantID),
	}
}
