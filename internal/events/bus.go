package events

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/glowbook/salon-platform/internal/domain/shared"
)

// Handler consumes domain events. A handler registered for an event type
// must tolerate being called concurrently with itself for different events.
type Handler interface {
	Handle(ctx context.Context, ev shared.DomainEvent) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, ev shared.DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, ev shared.DomainEvent) error {
	return f(ctx, ev)
}

// Bus is a synchronous in-process publisher. Handler failures are logged
// and never abort the publishing use case.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (b *Bus) Subscribe(h Handler, eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], h)
	}
}

func (b *Bus) Publish(ctx context.Context, evs ...shared.DomainEvent) {
	for _, ev := range evs {
		b.mu.RLock()
		hs := b.handlers[ev.EventType()]
		b.mu.RUnlock()

		for _, h := range hs {
			if err := b.dispatch(ctx, h, ev); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", ev.EventType()),
					zap.String("event_id", ev.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, h Handler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", ev.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return h.Handle(ctx, ev)
}
