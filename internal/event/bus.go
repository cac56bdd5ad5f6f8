package event

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handler consumes published events.
type Handler func(Event)

// Subscription identifies a registered handler and can cancel it.
type Subscription struct {
	bus *Bus
	id  uint64
}

// Cancel removes the subscription from its bus.
func (s Subscription) Cancel() {
	if s.bus != nil {
		s.bus.remove(s.id)
	}
}

type subscriber struct {
	id      uint64
	pattern Topic
	handler Handler
}

// Bus delivers events synchronously to subscribers in registration order.
// Safe for concurrent use, though the engine publishes from one goroutine.
type Bus struct {
	mu   sync.RWMutex
	subs []subscriber

	nextID        atomic.Uint64
	published     atomic.Uint64
	delivered     atomic.Uint64
	handlerPanics atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for a topic pattern. The handler receives
// events whose topic equals the pattern or lives below it.
func (b *Bus) Subscribe(pattern Topic, handler Handler) Subscription {
	id := b.nextID.Add(1)
	b.mu.Lock()
	b.subs = append(b.subs, subscriber{id: id, pattern: pattern, handler: handler})
	b.mu.Unlock()
	return Subscription{bus: b, id: id}
}

// Publish delivers an event to every matching subscriber before returning.
func (b *Bus) Publish(topic Topic, data any) {
	b.published.Add(1)
	ev := Event{Topic: topic, Time: time.Now(), Data: data}

	b.mu.RLock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, sub := range subs {
		if !sub.pattern.Contains(topic) {
			continue
		}
		b.deliver(sub, ev)
	}
}

func (b *Bus) deliver(sub subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
		}
	}()
	sub.handler(ev)
	b.delivered.Add(1)
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Stats reports delivery counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerPanics uint64
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerPanics: b.handlerPanics.Load(),
	}
}
