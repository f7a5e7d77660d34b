package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Event is a named fact that something happened in the application.
type Event interface {
	Name() string
}

// Handler reacts to a published event. Handlers for the same event run in
// subscription order and must be idempotent: a redelivered event must not
// produce a different end state than a single delivery.
type Handler interface {
	HandlerName() string
	Handle(ctx context.Context, event Event) error
}

// Bus is an in-process publish/subscribe dispatcher. Subscriptions are
// explicit and ordered; there is no implicit global registry.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]Handler
	logger zerolog.Logger
}

// NewBus creates an empty event bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		subs:   make(map[string][]Handler),
		logger: logger,
	}
}

// Subscribe appends a handler for the named event. Dispatch order follows
// subscription order.
func (b *Bus) Subscribe(eventName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

// Publish dispatches the event asynchronously. The caller's context values
// are preserved but its cancellation is not, so an HTTP request finishing
// early does not abort the handlers.
func (b *Bus) Publish(ctx context.Context, event Event) {
	go b.Dispatch(context.WithoutCancel(ctx), event)
}

// Dispatch runs all handlers for the event in order, synchronously. A
// failing or panicking handler is logged and isolated; later handlers
// still run.
func (b *Bus) Dispatch(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.subs[event.Name()]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.runHandler(ctx, h, event)
	}
}

func (b *Bus) runHandler(ctx context.Context, h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("event", event.Name()).
				Str("handler", h.HandlerName()).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()

	if err := h.Handle(ctx, event); err != nil {
		b.logger.Error().Err(err).
			Str("event", event.Name()).
			Str("handler", h.HandlerName()).
			Msg("Event handler failed")
	}
}
