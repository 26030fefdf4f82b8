package service

import "github.com/glowbook/salon-platform/internal/domain/shared"

const (
	EventCreated = "service.created"
	EventUpdated = "service.updated"
)

type Created struct {
	shared.BaseEvent
	Name string `json:"name"`
}

func NewCreated(serviceID, tenantID uint, name string) Created {
	return Created{
		BaseEvent: shared.NewBaseEvent(EventCreated, "service_offering", serviceID, tenantID),
		Name:      name,
	}
}

type Updated struct {
	shared.BaseEvent
}

func NewUpdated(serviceID, tenantID uint) Updated {
	return Updated{
		BaseEvent: shared.NewBaseEvent(EventUpdated, "service_offering", serviceID, tenantID),
	}
}
