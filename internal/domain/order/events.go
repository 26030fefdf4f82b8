package order

import "github.com/glowbook/salon-platform/internal/domain/shared"

const (
	EventPlaced    = "order.placed"
	EventPaid      = "order.paid"
	EventCancelled = "order.cancelled"
)

type Placed struct {
	shared.BaseEvent
	Number     string `json:"number"`
	TotalCents int64  `json:"total_cents"`
}

func NewPlaced(orderID, tenantID uint, number string, totalCents int64) Placed {
	return Placed{
		BaseEvent:  shared.NewBaseEvent(EventPlaced, "order", orderID, tenantID),
		Number:     number,
		TotalCents: totalCents,
	}
}

type Paid struct {
	shared.BaseEvent
}

func NewPaid(orderID, tenantID uint) Paid {
	return Paid{
		BaseEvent: shared.NewBaseEvent(EventPaid, "order", orderID, tenantID),
	}
}

type Cancelled struct {
	shared.BaseEvent
}

func NewCancelled(orderID, tenantID uint) Cancelled {
	return Cancelled{
		BaseEvent: shared.NewBaseEvent(EventCancelled, "order", orderID, tenantID),
	}
}
