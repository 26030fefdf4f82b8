package audit

import (
	"context"

	"github.com/glowbook/salon-platform/internal/domain/booking"
	"github.com/glowbook/salon-platform/internal/domain/order"
	"github.com/glowbook/salon-platform/internal/domain/payment"
	"github.com/glowbook/salon-platform/internal/domain/salon"
	"github.com/glowbook/salon-platform/internal/domain/service"
	"github.com/glowbook/salon-platform/internal/domain/shared"
	"github.com/glowbook/salon-platform/internal/domain/tenant"
	"github.com/glowbook/salon-platform/internal/events"
)

// Subscriber turns every domain event into an audit row via the
// dispatcher. It is the built-in consumer of the event bus.
type Subscriber struct {
	dispatcher *Dispatcher
}

func NewSubscriber(dispatcher *Dispatcher) *Subscriber {
	return &Subscriber{dispatcher: dispatcher}
}

// AllEventTypes lists every event the subscriber records.
func AllEventTypes() []string {
	return []string{
		tenant.EventRegistered,
		tenant.EventPlanChanged,
		salon.EventUpdated,
		salon.EventLogoUploaded,
		salon.EventBranchCreated,
		salon.EventBranchHoursUpdated,
		service.EventCreated,
		service.EventUpdated,
		booking.EventCreated,
		booking.EventCancelled,
		booking.EventCompleted,
		booking.EventNoShow,
		order.EventPlaced,
		order.EventPaid,
		order.EventCancelled,
		payment.EventConfirmed,
	}
}

func (s *Subscriber) Register(bus *events.Bus) {
	bus.Subscribe(s, AllEventTypes()...)
}

func (s *Subscriber) Handle(_ context.Context, ev shared.DomainEvent) error {
	id := ev.AggregateID()

	s.dispatcher.Dispatch(Event{
		TenantID: ev.TenantID(),
		Action:   ev.EventType(),
		Entity:   ev.AggregateType(),
		EntityID: &id,
		Metadata: ev,
	})
	return nil
}
