package events

import (
	"sync"

	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// Handler receives a published event. Handlers run synchronously on the
// publisher's goroutine, in subscription order.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Bus is the in-process synchronizer between independently-mounted sections.
// Delivery is broadcast and fire-and-forget: a handler that panics or a
// subscriber added mid-dispatch gets no guarantees beyond emission order.
//
// Publishing an event whose name is already being dispatched is dropped.
// That is the feedback-loop guard: a section reacting to "balances changed"
// must never cause another "balances changed" emission in the same dispatch.
type Bus struct {
	mu          sync.Mutex
	subs        map[string][]subscription
	dispatching map[string]bool
	nextID      int
	log         *logger.Logger
}

// NewBus creates an empty bus
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		subs:        make(map[string][]subscription),
		dispatching: make(map[string]bool),
		log:         log.WithField("component", "events"),
	}
}

// Subscribe registers a handler for the named event and returns an
// unsubscribe function.
func (b *Bus) Subscribe(name string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[name]
		for i, sub := range subs {
			if sub.id == id {
				b.subs[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to current subscribers before returning
func (b *Bus) Publish(e Event) {
	name := e.EventName()

	b.mu.Lock()
	if b.dispatching[name] {
		b.mu.Unlock()
		b.log.Debug("dropped re-entrant publish", "event", name)
		return
	}
	b.dispatching[name] = true
	handlers := make([]Handler, 0, len(b.subs[name]))
	for _, sub := range b.subs[name] {
		handlers = append(handlers, sub.fn)
	}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.dispatching[name] = false
		b.mu.Unlock()
	}()

	for _, fn := range handlers {
		fn(e)
	}
}
