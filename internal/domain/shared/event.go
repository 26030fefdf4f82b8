package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the record emitted by an aggregate on a state change.
// Events are dispatched in-process after the owning transaction commits.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateType() string
	AggregateID() uint
	TenantID() uint
}

// BaseEvent carries the common fields; concrete events embed it and add
// their own payload.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggType   string    `json:"aggregate_type"`
	AggID     uint      `json:"aggregate_id"`
	Tenant    uint      `json:"tenant_id"`
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) AggregateType() string { return e.AggType }
func (e BaseEvent) AggregateID() uint     { return e.AggID }
func (e BaseEvent) TenantID() uint        { return e.Tenant }

func NewBaseEvent(eventType, aggType string, aggID, tenantID uint) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggType:   aggType,
		AggID:     aggID,
		Tenant:    tenantID,
	}
}
