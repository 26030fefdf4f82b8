package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/glowbook/salon-platform/internal/domain/shared"
)

func testEvent(eventType string) shared.DomainEvent {
	return shared.NewBaseEvent(eventType, "test", 1, 1)
}

func TestBusPublish(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got []string
	bus.Subscribe(HandlerFunc(func(_ context.Context, ev shared.DomainEvent) error {
		got = append(got, ev.EventType())
		return nil
	}), "thing.created", "thing.deleted")

	bus.Publish(context.Background(), testEvent("thing.created"))
	bus.Publish(context.Background(), testEvent("thing.ignored"))
	bus.Publish(context.Background(), testEvent("thing.deleted"))

	assert.Equal(t, []string{"thing.created", "thing.deleted"}, got)
}

func TestBusMultipleHandlers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	calls := 0
	h := HandlerFunc(func(context.Context, shared.DomainEvent) error {
		calls++
		return nil
	})

	bus.Subscribe(h, "thing.created")
	bus.Subscribe(h, "thing.created")

	bus.Publish(context.Background(), testEvent("thing.created"))
	assert.Equal(t, 2, calls)
}

func TestBusHandlerFailureDoesNotStopOthers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	bus.Subscribe(HandlerFunc(func(context.Context, shared.DomainEvent) error {
		return errors.New("boom")
	}), "thing.created")

	called := false
	bus.Subscribe(HandlerFunc(func(context.Context, shared.DomainEvent) error {
		called = true
		return nil
	}), "thing.created")

	bus.Publish(context.Background(), testEvent("thing.created"))
	assert.True(t, called)
}

func TestBusHandlerPanicIsRecovered(t *testing.T) {
	bus := NewBus(zap.NewNop())

	bus.Subscribe(HandlerFunc(func(context.Context, shared.DomainEvent) error {
		panic("handler blew up")
	}), "thing.created")

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent("thing.created"))
	})
}

func TestBusPublishBatch(t *testing.T) {
	bus := NewBus(zap.NewNop())

	count := 0
	bus.Subscribe(HandlerFunc(func(context.Context, shared.DomainEvent) error {
		count++
		return nil
	}), "thing.created")

	bus.Publish(context.Background(),
		testEvent("thing.created"),
		testEvent("thing.created"),
		testEvent("thing.created"),
	)
	assert.Equal(t, 3, count)
}
